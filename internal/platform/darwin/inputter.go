//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices
#include <CoreGraphics/CoreGraphics.h>

static int cg_mouse(double x, double y, int down) {
    CGEventType type = down ? kCGEventLeftMouseDown : kCGEventLeftMouseUp;
    CGEventRef ev = CGEventCreateMouseEvent(NULL, type, CGPointMake(x, y), kCGMouseButtonLeft);
    if (!ev) return -1;
    CGEventSetIntegerValueField(ev, kCGMouseEventClickState, 1);
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
    return 0;
}

static int cg_key(CGKeyCode code, CGEventFlags flags, int down) {
    CGEventRef ev = CGEventCreateKeyboardEvent(NULL, code, down ? true : false);
    if (!ev) return -1;
    CGEventSetFlags(ev, flags);
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
    return 0;
}
*/
import "C"

import (
	"fmt"

	"github.com/mj1618/desktop-agent/internal/keys"
)

// Inputter implements platform.Inputter using CGEvent.
type Inputter struct{}

// NewInputter returns a CGEvent inputter.
func NewInputter() *Inputter {
	return &Inputter{}
}

func (i *Inputter) MouseDown(x, y float64) error {
	return mouse(x, y, true)
}

func (i *Inputter) MouseUp(x, y float64) error {
	return mouse(x, y, false)
}

func (i *Inputter) KeyDown(code keys.Code, mods keys.Modifier) error {
	return key(code, mods, true)
}

func (i *Inputter) KeyUp(code keys.Code, mods keys.Modifier) error {
	return key(code, mods, false)
}

func mouse(x, y float64, down bool) error {
	if C.cg_mouse(C.double(x), C.double(y), cBool(down)) != 0 {
		return fmt.Errorf("failed to create mouse event at (%.0f, %.0f)", x, y)
	}
	return nil
}

func key(code keys.Code, mods keys.Modifier, down bool) error {
	if C.cg_key(C.CGKeyCode(code), eventFlags(mods), cBool(down)) != 0 {
		return fmt.Errorf("failed to create key event for code 0x%02X", uint16(code))
	}
	return nil
}

func eventFlags(mods keys.Modifier) C.CGEventFlags {
	var flags C.CGEventFlags
	if mods&keys.Command != 0 {
		flags |= C.kCGEventFlagMaskCommand
	}
	if mods&keys.Shift != 0 {
		flags |= C.kCGEventFlagMaskShift
	}
	if mods&keys.Option != 0 {
		flags |= C.kCGEventFlagMaskAlternate
	}
	if mods&keys.Control != 0 {
		flags |= C.kCGEventFlagMaskControl
	}
	return flags
}

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
