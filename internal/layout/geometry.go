package layout

// Rect is an axis-aligned rectangle in layout coordinates.
type Rect struct {
	X, Y int
	W, H int
}

// Translate returns the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Grow returns the rectangle with its size changed by (dw, dh),
// clamped to a minimum of 1x1.
func (r Rect) Grow(dw, dh int) Rect {
	r.W += dw
	r.H += dh
	if r.W < 1 {
		r.W = 1
	}
	if r.H < 1 {
		r.H = 1
	}
	return r
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether the point (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Intersect returns the overlapping area of r and o, or an empty
// rectangle when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.Right(), o.Right())
	y2 := min(r.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Insets describes spacing on the four sides of a region.
type Insets struct {
	Top, Right, Bottom, Left int
}

// IsZero reports whether all four sides are zero.
func (in Insets) IsZero() bool {
	return in == Insets{}
}

// Shrink returns r reduced by the insets, clamped to a minimum of 1x1.
func (in Insets) Shrink(r Rect) Rect {
	r.X += in.Left
	r.Y += in.Top
	r.W -= in.Left + in.Right
	r.H -= in.Top + in.Bottom
	if r.W < 1 {
		r.W = 1
	}
	if r.H < 1 {
		r.H = 1
	}
	return r
}
