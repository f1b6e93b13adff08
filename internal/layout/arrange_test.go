package layout

import "testing"

func findRegion(t *testing.T, all []Region, id string) Region {
	t.Helper()
	for _, r := range all {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("region %q not in collection", id)
	return Region{}
}

func TestArrangeInsertShrinksOverlappingNeighbor(t *testing.T) {
	all := []Region{testRegion("a", 0, 0, 10, 4)}
	newcomer := testRegion("n", 6, 0, 4, 4)

	out := ArrangeInsert(all, newcomer)

	if len(out) != 2 {
		t.Fatalf("got %d regions, want 2", len(out))
	}
	a := findRegion(t, out, "a")
	if a.Frame.Right() > 6 {
		t.Errorf("neighbor still overlaps newcomer: %+v", a.Frame)
	}
	n := findRegion(t, out, "n")
	if n.Frame != newcomer.Frame {
		t.Errorf("newcomer frame changed: %+v", n.Frame)
	}
}

func TestArrangeInsertLeavesDisjointNeighborsAlone(t *testing.T) {
	all := []Region{testRegion("a", 0, 0, 4, 4)}
	out := ArrangeInsert(all, testRegion("n", 10, 10, 4, 4))

	a := findRegion(t, out, "a")
	if a.Frame != (Rect{X: 0, Y: 0, W: 4, H: 4}) {
		t.Errorf("disjoint neighbor was moved: %+v", a.Frame)
	}
}

func TestArrangeInsertDoesNotMutateInput(t *testing.T) {
	all := []Region{testRegion("a", 0, 0, 10, 4)}
	ArrangeInsert(all, testRegion("n", 6, 0, 4, 4))

	if all[0].Frame.W != 10 {
		t.Error("input snapshot was mutated")
	}
}

func TestArrangeSplitVertical(t *testing.T) {
	all := []Region{testRegion("a", 0, 0, 10, 4)}

	out, ok := ArrangeSplit(all, "a", true, "a2")
	if !ok {
		t.Fatal("split failed")
	}
	if len(out) != 2 {
		t.Fatalf("got %d regions, want 2", len(out))
	}

	first := findRegion(t, out, "a")
	second := findRegion(t, out, "a2")
	if first.Frame.W+second.Frame.W != 10 {
		t.Errorf("halves cover %d columns, want 10", first.Frame.W+second.Frame.W)
	}
	if second.Frame.X != first.Frame.Right() {
		t.Errorf("halves not adjacent: %+v / %+v", first.Frame, second.Frame)
	}
	if second.Fill != first.Fill {
		t.Error("second half did not inherit fill")
	}
}

func TestArrangeSplitHorizontal(t *testing.T) {
	all := []Region{testRegion("a", 0, 0, 4, 10)}

	out, ok := ArrangeSplit(all, "a", false, "a2")
	if !ok {
		t.Fatal("split failed")
	}

	first := findRegion(t, out, "a")
	second := findRegion(t, out, "a2")
	if second.Frame.Y != first.Frame.Bottom() {
		t.Errorf("halves not stacked: %+v / %+v", first.Frame, second.Frame)
	}
}

func TestArrangeSplitTooSmall(t *testing.T) {
	all := []Region{testRegion("a", 0, 0, 1, 1)}

	if _, ok := ArrangeSplit(all, "a", true, "a2"); ok {
		t.Error("split of a 1x1 region succeeded")
	}
}

func TestArrangeSplitUnknownID(t *testing.T) {
	if _, ok := ArrangeSplit(nil, "ghost", true, "x"); ok {
		t.Error("split of unknown region succeeded")
	}
}

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlap", Rect{0, 0, 4, 4}, Rect{2, 2, 4, 4}, Rect{2, 2, 2, 2}},
		{"disjoint", Rect{0, 0, 2, 2}, Rect{5, 5, 2, 2}, Rect{}},
		{"touching edges", Rect{0, 0, 2, 2}, Rect{2, 0, 2, 2}, Rect{}},
		{"contained", Rect{0, 0, 10, 10}, Rect{3, 3, 2, 2}, Rect{3, 3, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Errorf("Intersect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInsetsShrink(t *testing.T) {
	in := Insets{Top: 1, Right: 2, Bottom: 1, Left: 2}
	got := in.Shrink(Rect{X: 0, Y: 0, W: 10, H: 6})
	want := Rect{X: 2, Y: 1, W: 6, H: 4}
	if got != want {
		t.Errorf("Shrink = %+v, want %+v", got, want)
	}

	// Shrinking below minimum clamps rather than inverting.
	tiny := in.Shrink(Rect{X: 0, Y: 0, W: 2, H: 2})
	if tiny.W < 1 || tiny.H < 1 {
		t.Errorf("Shrink produced degenerate rect %+v", tiny)
	}
}
