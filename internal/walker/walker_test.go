package walker

import (
	"fmt"
	"testing"

	"github.com/mj1618/desktop-agent/internal/model"
	"github.com/mj1618/desktop-agent/internal/platform/fake"
)

var testApp = model.App{PID: 42, Name: "TextEdit", BundleID: "com.apple.TextEdit"}

// walkTree walks root with the default policy and the given limits.
func walkTree(t *testing.T, root *fake.Node, limits Limits) (*model.Snapshot, *fake.Graph) {
	t.Helper()
	g := fake.NewGraph()
	g.Roots[testApp.PID] = root
	h, err := g.ApplicationRoot(testApp.PID)
	if err != nil {
		t.Fatal(err)
	}
	snap := New(g, DefaultPolicy(), limits).Walk(h, testApp, screen)
	if err := snap.Validate(); err != nil {
		t.Fatalf("snapshot invariants: %v", err)
	}
	return snap, g
}

// buildEditorTree creates a small document window:
//
//	app
//	├── menubar
//	│   └── menubaritem "File" (excluded)
//	│       └── menuitem "Save" (excluded)
//	└── window "Untitled"
//	    ├── toolbar
//	    │   ├── btn "Bold"
//	    │   └── btn "Italic"
//	    ├── textarea
//	    └── btn "Offscreen" (invisible)
//	        └── btn "Hidden child"
func buildEditorTree() *fake.Node {
	menuBar := fake.El("AXMenuBar", "").Add(
		fake.El("AXMenuBarItem", "File").Add(
			fake.Button("Save", nil),
		),
	)
	offscreen := fake.Button("Offscreen", fake.Box(5000, 10, 40, 20)).Add(
		fake.Button("Hidden child", fake.Box(10, 10, 40, 20)),
	)
	win := fake.El("AXWindow", "Untitled").Add(
		fake.El("AXToolbar", "").Add(
			fake.Button("Bold", fake.Box(10, 30, 40, 20)),
			fake.Button("Italic", fake.Box(60, 30, 40, 20)),
		),
		&fake.Node{Role: "AXTextArea", Value: "hello", Frame: fake.Box(0, 60, 800, 600)},
		offscreen,
	)
	win.Frame = fake.Box(0, 0, 800, 700)
	return fake.El("AXApplication", "TextEdit").Add(menuBar, win)
}

func titles(snap *model.Snapshot) []string {
	var out []string
	for _, el := range snap.Ordered() {
		out = append(out, el.Title)
	}
	return out
}

func TestWalk_PreOrderStructuralIDs(t *testing.T) {
	snap, _ := walkTree(t, buildEditorTree(), DefaultLimits())

	got := fmt.Sprint(titles(snap))
	want := "[TextEdit  Untitled  Bold Italic ]"
	if got != want {
		t.Fatalf("pre-order titles = %s, want %s", got, want)
	}
	for _, el := range snap.Ordered() {
		for _, c := range el.Children {
			if c <= el.StructuralID {
				t.Errorf("child %d not after parent %d", c, el.StructuralID)
			}
		}
		if el.Parent != 0 && el.Depth != snap.Elements[el.Parent].Depth+1 {
			t.Errorf("element %d depth %d inconsistent with parent", el.StructuralID, el.Depth)
		}
	}
	if len(snap.Roots) != 1 || snap.Roots[0] != 1 {
		t.Errorf("roots = %v, want [1]", snap.Roots)
	}
}

func TestWalk_DenseInteractionIDs(t *testing.T) {
	snap, _ := walkTree(t, buildEditorTree(), DefaultLimits())

	if snap.InteractiveCount() != 3 {
		t.Fatalf("interactive count = %d, want 3 (Bold, Italic, textarea)", snap.InteractiveCount())
	}
	for k := 1; k <= snap.InteractiveCount(); k++ {
		el, ok := snap.Lookup(k)
		if !ok {
			t.Fatalf("interaction id %d missing", k)
		}
		if el.InteractionID != k {
			t.Errorf("Lookup(%d) returned element with id %d", k, el.InteractionID)
		}
	}
	if el, _ := snap.Lookup(1); el.Title != "Bold" {
		t.Errorf("interaction id 1 = %q, want Bold", el.Title)
	}
	if _, ok := snap.Lookup(4); ok {
		t.Error("interaction id 4 should not resolve")
	}
}

func TestWalk_ExcludedSubtreePruned(t *testing.T) {
	snap, _ := walkTree(t, buildEditorTree(), DefaultLimits())
	for _, el := range snap.Elements {
		if el.Role == "AXMenuBarItem" || el.Title == "File" || el.Title == "Save" {
			t.Errorf("excluded subtree leaked element %+v", el)
		}
	}
}

func TestWalk_InvisibleInteractiveDropped(t *testing.T) {
	snap, _ := walkTree(t, buildEditorTree(), DefaultLimits())
	for _, el := range snap.Elements {
		if el.Title == "Offscreen" {
			t.Error("off-screen interactive element retained")
		}
		if el.Title == "Hidden child" {
			t.Error("child of invisible element retained")
		}
	}
}

func wideTree(n int) *fake.Node {
	root := fake.El("AXWindow", "wide")
	for i := 0; i < n; i++ {
		root.Add(fake.Button(fmt.Sprintf("b%d", i), fake.Box(float64(i), 0, 1, 1)))
	}
	return root
}

func TestWalk_MaxElementsGlobalBudget(t *testing.T) {
	root := fake.El("AXWindow", "w").Add(
		fake.El("AXGroup", "left").Add(wideTree(10).Children...),
		fake.El("AXGroup", "right").Add(wideTree(10).Children...),
	)
	snap, _ := walkTree(t, root, Limits{MaxElements: 8, MaxChildrenPerNode: 100})

	if snap.Len() != 8 {
		t.Fatalf("retained %d elements, want exactly 8", snap.Len())
	}
	if !snap.Truncated {
		t.Error("expected Truncated to be set")
	}
	for _, el := range snap.Elements {
		if el.Title == "right" {
			t.Error("late branch should be truncated by the global budget")
		}
	}
	// window, left, b0..b5; interaction IDs stay dense up to the cut.
	if snap.InteractiveCount() != 6 {
		t.Errorf("interactive count = %d, want 6", snap.InteractiveCount())
	}
}

func TestWalk_ExactBudgetNotTruncated(t *testing.T) {
	snap, _ := walkTree(t, wideTree(4), Limits{MaxElements: 5, MaxChildrenPerNode: 100})
	if snap.Len() != 5 {
		t.Fatalf("retained %d, want 5", snap.Len())
	}
	if snap.Truncated {
		t.Error("a graph that fits the budget exactly is not truncated")
	}
}

func TestWalk_MaxChildrenPerNode(t *testing.T) {
	snap, _ := walkTree(t, wideTree(10), Limits{MaxElements: 500, MaxChildrenPerNode: 3})

	root := snap.Elements[1]
	if len(root.Children) != 3 {
		t.Fatalf("root has %d children, want 3", len(root.Children))
	}
	for i, sid := range root.Children {
		if want := fmt.Sprintf("b%d", i); snap.Elements[sid].Title != want {
			t.Errorf("child %d = %q, want %q (reported order)", i, snap.Elements[sid].Title, want)
		}
	}
}

func TestWalk_MaxDepth(t *testing.T) {
	root := fake.El("AXWindow", "w").Add(
		fake.El("AXGroup", "g1").Add(
			fake.El("AXGroup", "g2").Add(fake.Button("deep", nil)),
		),
	)
	snap, _ := walkTree(t, root, Limits{MaxElements: 500, MaxChildrenPerNode: 100, MaxDepth: 1})
	if snap.Len() != 2 {
		t.Errorf("retained %d, want 2 (depth 0 and 1)", snap.Len())
	}
}

func TestWalk_RootChildrenScenario(t *testing.T) {
	root := fake.El("AXApplication", "").Add(
		fake.El("AXMenuBarItem", "Apple"),
		fake.Button("Save", fake.Box(10, 10, 60, 20)),
		fake.El("AXGroup", ""),
	)
	snap, _ := walkTree(t, root, DefaultLimits())

	if snap.Len() != 3 {
		t.Fatalf("retained %d, want 3 (root, button, group)", snap.Len())
	}
	btn := snap.Elements[2]
	if btn.Title != "Save" || btn.InteractionID != 1 {
		t.Errorf("element 2 = %+v, want Save with interaction id 1", btn)
	}
	group := snap.Elements[3]
	if group.Role != "AXGroup" || group.Interactive() {
		t.Errorf("element 3 = %+v, want non-interactive AXGroup", group)
	}
}

func TestWalk_AttributeFailuresTolerated(t *testing.T) {
	broken := &fake.Node{Role: "AXButton", Title: "lost", FailAttrs: true, FailFrame: true, FailActions: true}
	noKids := &fake.Node{Role: "AXGroup", FailChildren: true, Children: []*fake.Node{fake.Button("unreachable", nil)}}
	root := fake.El("AXWindow", "w").Add(broken, noKids, fake.Button("after", nil))

	snap, _ := walkTree(t, root, DefaultLimits())

	if snap.Len() != 4 {
		t.Fatalf("retained %d, want 4", snap.Len())
	}
	el := snap.Elements[2]
	if el.Role != "" || el.Title != "" || el.Frame != nil || el.Interactive() {
		t.Errorf("failed queries should default to empty/false, got %+v", el)
	}
	if snap.Elements[4].Title != "after" {
		t.Error("walk should continue after failures")
	}
}

func TestWalk_CycleCut(t *testing.T) {
	root := fake.El("AXWindow", "w")
	group := fake.El("AXGroup", "g")
	root.Add(group)
	group.Children = append(group.Children, root)

	snap, _ := walkTree(t, root, DefaultLimits())
	if snap.Len() != 2 {
		t.Errorf("retained %d, want 2 (cycle back to root is cut)", snap.Len())
	}
}

func TestWalk_PartlyOffscreenRetained(t *testing.T) {
	root := fake.El("AXWindow", "w").Add(
		fake.Button("Clipped", fake.Box(1420, 10, 100, 20)),
		fake.Button("Gone", fake.Box(1440, 10, 100, 20)),
	)
	snap, _ := walkTree(t, root, DefaultLimits())
	if snap.InteractiveCount() != 1 {
		t.Fatalf("interactive = %d, want 1", snap.InteractiveCount())
	}
	if el, _ := snap.Lookup(1); el.Title != "Clipped" {
		t.Errorf("retained %q, want the clipped button", el.Title)
	}
}

func TestWalk_CycleCutAcrossFreshReferences(t *testing.T) {
	// A -> B -> A, where each Children call hands back a new reference to A.
	a := fake.Button("A", fake.Box(0, 0, 10, 10))
	b := fake.Button("B", fake.Box(0, 20, 10, 10))
	a.Add(b)
	b.Children = append(b.Children, a)

	snap, g := walkTree(t, fake.El("AXWindow", "w").Add(a), DefaultLimits())
	if snap.Len() != 3 || snap.Truncated {
		t.Fatalf("retained %d (truncated=%v), want 3 untruncated", snap.Len(), snap.Truncated)
	}
	if g.Minted <= snap.Len() {
		t.Errorf("minted %d references for %d elements, want the revisit to mint a fresh one", g.Minted, snap.Len())
	}
	if got := snap.InteractiveCount(); got != 2 {
		t.Errorf("interactive = %d, want 2", got)
	}
}

func TestWalk_CapturesAttributes(t *testing.T) {
	field := &fake.Node{
		Role:        "AXTextField",
		Title:       "Search",
		Value:       "go",
		Placeholder: "Type here",
		Description: "search box",
		Frame:       fake.Box(1, 2, 3, 4),
	}
	snap, _ := walkTree(t, fake.El("AXWindow", "").Add(field), DefaultLimits())
	el := snap.Elements[2]
	if el.Title != "Search" || el.Value != "go" || el.Placeholder != "Type here" || el.Description != "search box" {
		t.Errorf("attributes not captured: %+v", el)
	}
	if el.Frame == nil || *el.Frame != *fake.Box(1, 2, 3, 4) {
		t.Errorf("frame not captured: %+v", el.Frame)
	}
	if el.Handle == 0 {
		t.Error("handle not recorded")
	}
}
