package model

import "strings"

// RoleMap maps macOS AXRole values to compact role codes.
var RoleMap = map[string]string{
	"AXButton":      "btn",
	"AXStaticText":  "txt",
	"AXLink":        "lnk",
	"AXImage":       "img",
	"AXTextField":   "input",
	"AXTextArea":    "input",
	"AXComboBox":    "combo",
	"AXCheckBox":    "chk",
	"AXSwitch":      "toggle",
	"AXRadioButton": "radio",
	"AXPopUpButton": "popup",
	"AXMenuButton":  "popup",
	"AXSlider":      "slider",
	"AXMenu":        "menu",
	"AXMenuBar":     "menubar",
	"AXMenuItem":    "menuitem",
	"AXMenuBarItem": "menuitem",
	"AXTabGroup":    "tab",
	"AXList":        "list",
	"AXOutline":     "list",
	"AXTable":       "list",
	"AXRow":         "row",
	"AXCell":        "cell",
	"AXGroup":       "group",
	"AXSplitGroup":  "group",
	"AXRadioGroup":  "group",
	"AXScrollArea":  "scroll",
	"AXToolbar":     "toolbar",
	"AXWebArea":     "web",
	"AXWindow":      "window",
	"AXSheet":       "dialog",
	"AXApplication": "app",
	"AXHeading":     "heading",
}

// GroupTag is the compact code shared by all structural container roles.
const GroupTag = "group"

// MapRole converts a raw accessibility role to a compact code. Roles missing
// from RoleMap fall back to the lower-cased role without its "AX" prefix, so
// the agent still sees something meaningful.
func MapRole(role string) string {
	if short, ok := RoleMap[role]; ok {
		return short
	}
	if role == "" {
		return "unknown"
	}
	return strings.ToLower(strings.TrimPrefix(role, "AX"))
}
