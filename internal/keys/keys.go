// Package keys maps key names and characters to macOS virtual key codes and
// parses "+"-delimited keyboard commands such as "cmd+shift+t".
package keys

import (
	"fmt"
	"strings"
)

// Code is a virtual key code.
type Code uint16

// Modifier is a portable set of modifier keys. Backends translate it to their
// native event flags.
type Modifier uint8

const (
	Shift Modifier = 1 << iota
	Control
	Option
	Command
)

// String renders the set in a fixed order, e.g. "cmd+shift".
func (m Modifier) String() string {
	var parts []string
	if m&Command != 0 {
		parts = append(parts, "cmd")
	}
	if m&Control != 0 {
		parts = append(parts, "ctrl")
	}
	if m&Option != 0 {
		parts = append(parts, "alt")
	}
	if m&Shift != 0 {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}

// macOS virtual key codes from Carbon Events.h.
var codeMap = map[string]Code{
	"a": 0x00, "b": 0x0B, "c": 0x08, "d": 0x02, "e": 0x0E, "f": 0x03,
	"g": 0x05, "h": 0x04, "i": 0x22, "j": 0x26, "k": 0x28, "l": 0x25,
	"m": 0x2E, "n": 0x2D, "o": 0x1F, "p": 0x23, "q": 0x0C, "r": 0x0F,
	"s": 0x01, "t": 0x11, "u": 0x20, "v": 0x09, "w": 0x0D, "x": 0x07,
	"y": 0x10, "z": 0x06,
	"0": 0x1D, "1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15,
	"5": 0x17, "6": 0x16, "7": 0x1A, "8": 0x1C, "9": 0x19,
	"return": 0x24, "enter": 0x24, "tab": 0x30, "space": 0x31,
	"delete": 0x33, "backspace": 0x33, "forwarddelete": 0x75,
	"escape": 0x35, "esc": 0x35,
	"up": 0x7E, "down": 0x7D, "left": 0x7B, "right": 0x7C,
	"home": 0x73, "end": 0x77, "pageup": 0x74, "pagedown": 0x79,
	"f1": 0x7A, "f2": 0x78, "f3": 0x63, "f4": 0x76, "f5": 0x60,
	"f6": 0x61, "f7": 0x62, "f8": 0x64, "f9": 0x65, "f10": 0x6D,
	"f11": 0x67, "f12": 0x6F,
	"-": 0x1B, "minus": 0x1B, "=": 0x18, "equal": 0x18, "plus": 0x18,
	"[": 0x21, "]": 0x1E, ";": 0x29, "'": 0x27, ",": 0x2B, ".": 0x2F,
	"/": 0x2C, "\\": 0x2A, "`": 0x32,
}

// shiftedKeys names keys that only exist as the shifted form of a code, so
// "cmd+plus" sends cmd+shift+= rather than cmd+=.
var shiftedKeys = map[string]bool{"plus": true}

var modifierMap = map[string]Modifier{
	"cmd": Command, "command": Command,
	"shift": Shift,
	"ctrl": Control, "control": Control,
	"alt": Option, "opt": Option, "option": Option,
}

// Lookup returns the key code for a key name (case-insensitive).
func Lookup(name string) (Code, bool) {
	code, ok := codeMap[strings.ToLower(name)]
	return code, ok
}

// CharKey maps a character typed by the keystroke fallback to a key code and
// the modifiers needed to produce it. Only ASCII letters, digits, and space
// are mapped.
func CharKey(r rune) (Code, Modifier, bool) {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return codeMap[string(r)], 0, true
	case r >= 'A' && r <= 'Z':
		return codeMap[string(r-'A'+'a')], Shift, true
	case r == ' ':
		return codeMap["space"], 0, true
	}
	return 0, 0, false
}

// Combo is a parsed keyboard command.
type Combo struct {
	Key       string
	Code      Code
	Modifiers Modifier
}

// Parse parses a "+"-delimited, case-insensitive modifier+key command. Exactly
// one token must be a non-modifier key with a known code.
func Parse(command string) (Combo, error) {
	if strings.TrimSpace(command) == "" {
		return Combo{}, fmt.Errorf("empty keyboard command")
	}
	var c Combo
	found := false
	for _, tok := range strings.Split(command, "+") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			return Combo{}, fmt.Errorf("empty key in %q", command)
		}
		if mod, ok := modifierMap[tok]; ok {
			c.Modifiers |= mod
			continue
		}
		if found {
			return Combo{}, fmt.Errorf("more than one key in %q: %q and %q", command, c.Key, tok)
		}
		code, ok := codeMap[tok]
		if !ok {
			return Combo{}, fmt.Errorf("unknown key: %q", tok)
		}
		c.Key, c.Code, found = tok, code, true
		if shiftedKeys[tok] {
			c.Modifiers |= Shift
		}
	}
	if !found {
		return Combo{}, fmt.Errorf("no key commandified in %q, only modifiers", command)
	}
	return c, nil
}
