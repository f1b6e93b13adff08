package layout

// Collection transforms used by structural edits. Each returns a new
// snapshot; callers swap it in atomically with ReplaceAll so several
// regions never change through a partially-applied intermediate state.

// ArrangeInsert returns the collection with r added. Existing regions
// overlapping r are shrunk away from it along the axis of least
// overlap, making room for the newcomer.
func ArrangeInsert(all []Region, r Region) []Region {
	out := make([]Region, 0, len(all)+1)
	for _, existing := range all {
		e := existing.Clone()
		if e.Frame.Intersects(r.Frame) {
			e.Frame = shrinkAway(e.Frame, r.Frame)
		}
		out = append(out, e)
	}
	out = append(out, r.Clone())
	return out
}

// shrinkAway reduces e so it no longer overlaps intruder, giving up
// area along the axis with the smaller overlap. A region fully covered
// collapses to its minimum size rather than disappearing.
func shrinkAway(e, intruder Rect) Rect {
	ov := e.Intersect(intruder)
	if ov.IsEmpty() {
		return e
	}
	if ov.W <= ov.H {
		if e.X < intruder.X {
			e.W -= ov.W // give up the right edge
		} else {
			e.X += ov.W // give up the left edge
			e.W -= ov.W
		}
		if e.W < 1 {
			e.W = 1
		}
	} else {
		if e.Y < intruder.Y {
			e.H -= ov.H
		} else {
			e.Y += ov.H
			e.H -= ov.H
		}
		if e.H < 1 {
			e.H = 1
		}
	}
	return e
}

// ArrangeSplit returns the collection with the identified region split
// in two. A vertical split cuts along a vertical line, leaving the two
// halves side by side; otherwise they stack. The second half takes
// newID and inherits the original's attributes. Returns false when the
// region is unknown or too small to split.
func ArrangeSplit(all []Region, id string, vertical bool, newID string) ([]Region, bool) {
	idx := -1
	for i, r := range all {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	orig := all[idx]
	if vertical && orig.Frame.W < 2 {
		return nil, false
	}
	if !vertical && orig.Frame.H < 2 {
		return nil, false
	}

	first := orig.Clone()
	second := orig.Clone()
	second.ID = newID
	if vertical {
		half := orig.Frame.W / 2
		first.Frame.W = half
		second.Frame.X = orig.Frame.X + half
		second.Frame.W = orig.Frame.W - half
	} else {
		half := orig.Frame.H / 2
		first.Frame.H = half
		second.Frame.Y = orig.Frame.Y + half
		second.Frame.H = orig.Frame.H - half
	}

	out := make([]Region, 0, len(all)+1)
	for i, r := range all {
		if i == idx {
			out = append(out, first)
			continue
		}
		out = append(out, r.Clone())
	}
	out = append(out, second)
	return out, true
}
