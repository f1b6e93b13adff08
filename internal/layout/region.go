// Package layout holds the spatial document the editor mutates: a
// collection of rectangular regions with appearance, stacking order and
// spacing attributes, plus the change-notification machinery commands
// rely on.
package layout

// Region is a snapshot of one rectangular area of the layout. Regions
// are value types; the document hands out copies, never aliases into
// its own state.
type Region struct {
	ID      string
	Name    string
	Frame   Rect
	Fill    string // normalized "#rrggbb"
	ZIndex  int
	Gap     Insets
	Padding Insets
	Params  map[string]float64
}

// Clone returns a deep copy of the region.
func (r Region) Clone() Region {
	if r.Params != nil {
		params := make(map[string]float64, len(r.Params))
		for k, v := range r.Params {
			params[k] = v
		}
		r.Params = params
	}
	return r
}

// IsValid reports whether the snapshot carries enough state to act on.
func (r Region) IsValid() bool {
	return r.ID != "" && !r.Frame.IsEmpty()
}
