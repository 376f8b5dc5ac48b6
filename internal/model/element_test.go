package model

import "testing"

func TestRect_Center(t *testing.T) {
	x, y := Rect{X: 10, Y: 20, Width: 100, Height: 30}.Center()
	if x != 60 || y != 35 {
		t.Errorf("Center() = (%v, %v), want (60, 35)", x, y)
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"origin", 0, 0, true},
		{"inside", 50, 25, true},
		{"right edge", 100, 25, false},
		{"bottom edge", 50, 50, false},
		{"negative", -1, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRect_Overlaps(t *testing.T) {
	screen := Rect{X: 0, Y: 0, Width: 1440, Height: 900}
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"inside", Rect{X: 10, Y: 10, Width: 50, Height: 20}, true},
		{"straddles right edge", Rect{X: 1420, Y: 10, Width: 100, Height: 20}, true},
		{"fully right", Rect{X: 1440, Y: 10, Width: 100, Height: 20}, false},
		{"above", Rect{X: 10, Y: -40, Width: 50, Height: 20}, false},
		{"covers screen", Rect{X: -10, Y: -10, Width: 2000, Height: 2000}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Overlaps(screen); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestElement_Interactive(t *testing.T) {
	if (&Element{StructuralID: 1}).Interactive() {
		t.Error("element without interaction id should not be interactive")
	}
	if !(&Element{StructuralID: 1, InteractionID: 1}).Interactive() {
		t.Error("element with interaction id should be interactive")
	}
}
