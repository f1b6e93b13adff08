// Package script runs Lua layout scripts against an editor session.
//
// A script executes inside one transaction: all of its edits commit as
// a single undo step named after the script, and a script error
// abandons the entry. Undo and redo are deliberately not exposed to
// scripts; history navigation belongs to the user.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/mosaicedit/mosaic/internal/layout"
	"github.com/mosaicedit/mosaic/internal/session"
)

// Runner executes scripts against one session.
type Runner struct {
	sess *session.Session
}

// NewRunner creates a Runner bound to sess.
func NewRunner(sess *session.Session) *Runner {
	return &Runner{sess: sess}
}

// Run executes src in a fresh Lua state. The name labels the resulting
// undo entry. Each call gets its own state; scripts cannot leak globals
// into each other.
func (r *Runner) Run(name, src string) error {
	L := lua.NewState()
	defer L.Close()
	r.register(L)

	err := r.sess.Transaction(name, func() error {
		return L.DoString(src)
	})
	if err != nil {
		return fmt.Errorf("script %q: %w", name, err)
	}
	return nil
}

// register installs the mosaic module into L.
func (r *Runner) register(L *lua.LState) {
	mod := L.NewTable()

	L.SetField(mod, "move", L.NewFunction(r.move))
	L.SetField(mod, "resize", L.NewFunction(r.resize))
	L.SetField(mod, "fill", L.NewFunction(r.fill))
	L.SetField(mod, "raise", L.NewFunction(r.raise))
	L.SetField(mod, "lower", L.NewFunction(r.lower))
	L.SetField(mod, "insert", L.NewFunction(r.insert))
	L.SetField(mod, "split", L.NewFunction(r.split))
	L.SetField(mod, "delete", L.NewFunction(r.delete))
	L.SetField(mod, "clear", L.NewFunction(r.clear))
	L.SetField(mod, "select", L.NewFunction(r.selectRegions))
	L.SetField(mod, "set_param", L.NewFunction(r.setParam))
	L.SetField(mod, "set_gap", L.NewFunction(r.setGap))
	L.SetField(mod, "set_padding", L.NewFunction(r.setPadding))
	L.SetField(mod, "regions", L.NewFunction(r.regions))
	L.SetField(mod, "get", L.NewFunction(r.get))

	L.SetGlobal("mosaic", mod)
}

// move(id, x, y)
func (r *Runner) move(L *lua.LState) int {
	id := L.CheckString(1)
	x := L.CheckInt(2)
	y := L.CheckInt(3)

	reg, ok := r.sess.Document().Get(id)
	if !ok {
		L.RaiseError("no region %q", id)
	}
	to := reg.Frame
	to.X, to.Y = x, y
	r.sess.Move(id, to)
	return 0
}

// resize(id, w, h)
func (r *Runner) resize(L *lua.LState) int {
	id := L.CheckString(1)
	w := L.CheckInt(2)
	h := L.CheckInt(3)

	reg, ok := r.sess.Document().Get(id)
	if !ok {
		L.RaiseError("no region %q", id)
	}
	to := reg.Frame
	to.W, to.H = w, h
	r.sess.Resize(id, to)
	return 0
}

// fill(ids, color) where ids is a string or a list of strings
func (r *Runner) fill(L *lua.LState) int {
	ids := checkStringOrList(L, 1)
	color := L.CheckString(2)
	r.sess.Fill(ids, color)
	return 0
}

// raise(id)
func (r *Runner) raise(L *lua.LState) int {
	r.sess.Raise(L.CheckString(1))
	return 0
}

// lower(id)
func (r *Runner) lower(L *lua.LState) int {
	r.sess.Lower(L.CheckString(1))
	return 0
}

// insert{x=, y=, w=, h=, name=, fill=} -> id
func (r *Runner) insert(L *lua.LState) int {
	opts := L.CheckTable(1)
	reg := layout.Region{
		Name: lua.LVAsString(L.GetField(opts, "name")),
		Fill: lua.LVAsString(L.GetField(opts, "fill")),
		Frame: layout.Rect{
			X: tableInt(L, opts, "x"),
			Y: tableInt(L, opts, "y"),
			W: tableInt(L, opts, "w"),
			H: tableInt(L, opts, "h"),
		},
	}
	id := r.sess.Insert(reg)
	if id == "" {
		L.RaiseError("region not insertable")
	}
	L.Push(lua.LString(id))
	return 1
}

// split(id, vertical) -> id or nil
func (r *Runner) split(L *lua.LState) int {
	id := L.CheckString(1)
	vertical := L.CheckBool(2)
	newID := r.sess.Split(id, vertical)
	if newID == "" {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(newID))
	return 1
}

// delete(id)
func (r *Runner) delete(L *lua.LState) int {
	id := L.CheckString(1)
	if !r.sess.Document().Has(id) {
		L.RaiseError("no region %q", id)
	}
	r.sess.Delete(id)
	return 0
}

// clear()
func (r *Runner) clear(L *lua.LState) int {
	r.sess.ClearAll()
	return 0
}

// select(ids) where ids is a string or a list of strings
func (r *Runner) selectRegions(L *lua.LState) int {
	r.sess.Select(checkStringOrList(L, 1))
	return 0
}

// set_param(id, name, value)
func (r *Runner) setParam(L *lua.LState) int {
	id := L.CheckString(1)
	name := L.CheckString(2)
	value := float64(L.CheckNumber(3))
	r.sess.SetParam(id, name, value)
	return 0
}

// set_gap(id, top, right, bottom, left)
func (r *Runner) setGap(L *lua.LState) int {
	id, in := checkInsets(L)
	r.sess.SetGap(id, in)
	return 0
}

// set_padding(id, top, right, bottom, left)
func (r *Runner) setPadding(L *lua.LState) int {
	id, in := checkInsets(L)
	r.sess.SetPadding(id, in)
	return 0
}

// regions() -> list of region ids in id order
func (r *Runner) regions(L *lua.LState) int {
	out := L.NewTable()
	for _, reg := range r.sess.Document().Snapshot() {
		out.Append(lua.LString(reg.ID))
	}
	L.Push(out)
	return 1
}

// get(id) -> table or nil
func (r *Runner) get(L *lua.LState) int {
	reg, ok := r.sess.Document().Get(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}

	t := L.NewTable()
	L.SetField(t, "id", lua.LString(reg.ID))
	L.SetField(t, "name", lua.LString(reg.Name))
	L.SetField(t, "fill", lua.LString(reg.Fill))
	L.SetField(t, "z", lua.LNumber(reg.ZIndex))
	L.SetField(t, "x", lua.LNumber(reg.Frame.X))
	L.SetField(t, "y", lua.LNumber(reg.Frame.Y))
	L.SetField(t, "w", lua.LNumber(reg.Frame.W))
	L.SetField(t, "h", lua.LNumber(reg.Frame.H))

	params := L.NewTable()
	for name, v := range reg.Params {
		L.SetField(params, name, lua.LNumber(v))
	}
	L.SetField(t, "params", params)

	L.Push(t)
	return 1
}

func checkInsets(L *lua.LState) (string, layout.Insets) {
	return L.CheckString(1), layout.Insets{
		Top:    L.CheckInt(2),
		Right:  L.CheckInt(3),
		Bottom: L.CheckInt(4),
		Left:   L.CheckInt(5),
	}
}

func checkStringOrList(L *lua.LState, n int) []string {
	switch v := L.CheckAny(n).(type) {
	case lua.LString:
		return []string{string(v)}
	case *lua.LTable:
		out := make([]string, 0, v.Len())
		v.ForEach(func(_, item lua.LValue) {
			out = append(out, lua.LVAsString(item))
		})
		return out
	default:
		L.ArgError(n, "string or list of strings expected")
		return nil
	}
}

func tableInt(L *lua.LState, t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(L.GetField(t, key)))
}
