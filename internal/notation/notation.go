// Package notation renders a Snapshot into the compact text an agent reads.
//
// Each element renders as
//
//	tag[ID=n][title="..."][value="..."][placeholder="..."]{free text}
//
// where the ID bracket appears only on interactive elements. Children follow
// their parent after ">": a single child directly, several children in
// parentheses joined by "+". Unlabelled, non-interactive groups render empty
// and their children take their place.
package notation

import (
	"fmt"
	"strings"

	"github.com/mj1618/desktop-agent/internal/model"
)

// Render returns the full notation for snap. It reads only captured
// attributes, so repeated calls on the same snapshot return identical text.
func Render(snap *model.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "App: %s (%s)\n", snap.App.Name, snap.App.BundleID)

	var roots []string
	for _, sid := range snap.Roots {
		if s := renderTree(snap, sid); s != "" {
			roots = append(roots, s)
		}
	}
	b.WriteString(strings.Join(roots, "+"))
	b.WriteString("\n\nInteractive elements:\n")
	for _, sid := range snap.Interactive {
		el := snap.Elements[sid]
		fmt.Fprintf(&b, "ID=%d: %s\n", el.InteractionID, RenderElement(el))
	}

	b.WriteString("\nRunning applications:\n")
	seen := make(map[string]bool, len(snap.Running))
	for _, app := range snap.Running {
		if seen[app.BundleID] {
			continue
		}
		seen[app.BundleID] = true
		fmt.Fprintf(&b, "- %s | %s\n", app.Name, app.BundleID)
	}

	if snap.Truncated {
		fmt.Fprintf(&b, "\n(truncated at %d elements)\n", snap.Len())
	}
	return b.String()
}

// renderTree renders the subtree rooted at sid.
func renderTree(snap *model.Snapshot, sid int) string {
	el, ok := snap.Elements[sid]
	if !ok {
		return ""
	}
	own := renderNode(el)

	var kids []string
	for _, c := range el.Children {
		if s := renderTree(snap, c); s != "" {
			kids = append(kids, s)
		}
	}

	switch {
	case len(kids) == 0:
		return own
	case own == "":
		return strings.Join(kids, "+")
	default:
		return own + ">" + strings.Join(kids, "+")
	}
}

// renderNode renders one element for the hierarchy. The group check runs after
// the ID bracket is appended, so an interactive group is never elided.
func renderNode(el *model.Element) string {
	tag := model.MapRole(el.Role)
	var b strings.Builder
	b.WriteString(tag)
	if el.InteractionID > 0 {
		fmt.Fprintf(&b, "[ID=%d]", el.InteractionID)
	}
	writeBody(&b, el)
	s := b.String()
	if s == model.GroupTag {
		return ""
	}
	return s
}

// RenderElement renders one element without its ID bracket, for the flat
// index and for action result messages.
func RenderElement(el *model.Element) string {
	var b strings.Builder
	b.WriteString(model.MapRole(el.Role))
	writeBody(&b, el)
	return b.String()
}

func writeBody(b *strings.Builder, el *model.Element) {
	writeAttr(b, "title", el.Title)
	writeAttr(b, "value", el.Value)
	writeAttr(b, "placeholder", el.Placeholder)
	if text := freeText(el); text != "" {
		b.WriteString("{")
		b.WriteString(strings.ReplaceAll(text, "}", `\}`))
		b.WriteString("}")
	}
}

func writeAttr(b *strings.Builder, key, value string) {
	if value = escape(value); value == "" {
		return
	}
	fmt.Fprintf(b, `[%s="%s"]`, key, value)
}

// freeText joins description and raw text content.
func freeText(el *model.Element) string {
	var parts []string
	for _, s := range []string{el.Description, el.Text} {
		if s = foldSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

var attrEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escape(s string) string {
	return attrEscaper.Replace(foldSpace(s))
}

// foldSpace collapses line breaks and tabs into single spaces.
func foldSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
