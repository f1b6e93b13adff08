// Package session wires a layout document to its undo history and
// exposes the gesture-level operations an editor frontend calls. Every
// mutating method routes through the history stack, so a frontend never
// has to build commands itself.
package session

import (
	"github.com/google/uuid"

	"github.com/mosaicedit/mosaic/internal/event"
	"github.com/mosaicedit/mosaic/internal/history"
	"github.com/mosaicedit/mosaic/internal/layout"
	"github.com/mosaicedit/mosaic/internal/logger"
)

// Option configures a Session during creation.
type Option func(*settings)

type settings struct {
	bus      *event.Bus
	maxDepth int
	onState  func(history.State)
}

// WithBus shares an existing event bus instead of creating one.
func WithBus(bus *event.Bus) Option {
	return func(s *settings) { s.bus = bus }
}

// WithMaxDepth bounds the undo history.
func WithMaxDepth(n int) Option {
	return func(s *settings) { s.maxDepth = n }
}

// WithStateFunc invokes fn after every history change.
func WithStateFunc(fn func(history.State)) Option {
	return func(s *settings) { s.onState = fn }
}

// Session owns one document and its edit history. Like both, it belongs
// to a single logical thread.
type Session struct {
	doc   *layout.Document
	stack *history.Stack
	bus   *event.Bus
}

// New creates an empty session.
func New(opts ...Option) *Session {
	cfg := settings{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.bus == nil {
		cfg.bus = event.NewBus()
	}

	stackOpts := []history.Option{history.WithBus(cfg.bus)}
	if cfg.onState != nil {
		stackOpts = append(stackOpts, history.WithStateFunc(cfg.onState))
	}

	return &Session{
		doc:   layout.NewDocument(cfg.bus),
		stack: history.NewStack(cfg.maxDepth, stackOpts...),
		bus:   cfg.bus,
	}
}

// Document returns the live document for read access and rendering.
func (s *Session) Document() *layout.Document { return s.doc }

// Bus returns the session's event bus.
func (s *Session) Bus() *event.Bus { return s.bus }

// State returns the current history surface.
func (s *Session) State() history.State { return s.stack.State() }

// Undo reverts the most recent edit.
func (s *Session) Undo() { s.stack.Undo() }

// Redo re-applies the most recently undone edit.
func (s *Session) Redo() { s.stack.Redo() }

// SetClean marks the current state as saved.
func (s *Session) SetClean() { s.stack.SetClean() }

// IsClean reports whether the document matches its saved state.
func (s *Session) IsClean() bool { return s.stack.IsClean() }

// SetMaxDepth changes the history bound.
func (s *Session) SetMaxDepth(n int) { s.stack.SetMaxDepth(n) }

// Close revokes the document. Commands still held by the history warn
// and no-op from here on.
func (s *Session) Close() {
	s.stack.Clear()
	s.doc.Close()
}

// Seed replaces the whole collection outside the history, for loading
// an initial layout. The history is cleared and the result marked
// clean.
func (s *Session) Seed(regions []layout.Region) {
	s.doc.BeginBatch()
	s.doc.ReplaceAll(regions)
	s.doc.EndBatch()
	s.stack.Clear()
	s.stack.SetClean()
}

// Transaction runs fn with a macro open, committing it as one undo step
// when fn succeeds. On error the macro is abandoned and the error
// returned; document effects of commands already run inside fn remain.
func (s *Session) Transaction(label string, fn func() error) error {
	s.stack.BeginMacro(label)
	if err := fn(); err != nil {
		s.stack.CancelMacro()
		return err
	}
	s.stack.EndMacro()
	return nil
}

// Move shifts a region to a new frame as one (mergeable) edit.
func (s *Session) Move(id string, to layout.Rect) {
	r, ok := s.doc.Get(id)
	if !ok {
		logger.Warnf("session: Move: region %q missing", id)
		return
	}
	s.stack.Push(history.NewMoveRegion(s.doc.Handle(), id, r.Frame, to))
}

// Resize gives a region a new frame as one (mergeable) edit.
func (s *Session) Resize(id string, to layout.Rect) {
	r, ok := s.doc.Get(id)
	if !ok {
		logger.Warnf("session: Resize: region %q missing", id)
		return
	}
	s.stack.Push(history.NewResizeRegion(s.doc.Handle(), id, r.Frame, to))
}

// Fill recolors the given regions in one step.
func (s *Session) Fill(ids []string, color string) {
	s.stack.Push(history.NewSetFill(s.doc.Handle(), ids, color))
}

// Raise moves a region one step up the stacking order.
func (s *Session) Raise(id string) {
	s.stack.Push(history.NewRaiseRegion(s.doc.Handle(), id))
}

// Lower moves a region one step down the stacking order.
func (s *Session) Lower(id string) {
	s.stack.Push(history.NewLowerRegion(s.doc.Handle(), id))
}

// Insert adds a region, shrinking overlapped neighbors to make room. A
// missing ID is filled with a fresh one. Returns the region's ID, or ""
// when the region is not insertable.
func (s *Session) Insert(r layout.Region) string {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	cmd := history.NewInsertRegion(s.doc.Handle(), r)
	if !cmd.Valid() {
		logger.Warnf("session: Insert: region %q not insertable", r.ID)
		return ""
	}
	s.stack.Push(cmd)
	return r.ID
}

// Split halves a region along the given axis, the second half becoming
// a new region. Returns the new region's ID, or "" when the region is
// unknown or too small to split.
func (s *Session) Split(id string, vertical bool) string {
	newID := uuid.NewString()
	cmd := history.NewSplitRegion(s.doc.Handle(), id, vertical, newID)
	if !cmd.Valid() {
		logger.Warnf("session: Split: region %q cannot be split", id)
		return ""
	}
	s.stack.Push(cmd)
	return newID
}

// Delete removes a region as one undoable step.
func (s *Session) Delete(id string) {
	cmd := history.NewDeleteRegion(s.doc.Handle(), id)
	if !cmd.Valid() {
		logger.Warnf("session: Delete: region %q missing", id)
		return
	}
	s.stack.Push(cmd)
}

// ClearAll removes every region as one undoable step.
func (s *Session) ClearAll() {
	s.stack.Push(history.NewClearRegions(s.doc.Handle()))
}

// Select records a selection change in the history.
func (s *Session) Select(ids []string) {
	s.stack.Push(history.NewSetSelection(s.doc.Handle(), ids))
}

// SetParam edits one named parameter on a region.
func (s *Session) SetParam(id, name string, value float64) {
	s.stack.Push(history.NewSetParam(s.doc.Handle(), id, name, value))
}

// SetGap overrides a region's gap insets.
func (s *Session) SetGap(id string, in layout.Insets) {
	s.stack.Push(history.NewSetGap(s.doc.Handle(), id, in))
}

// SetPadding overrides a region's padding insets.
func (s *Session) SetPadding(id string, in layout.Insets) {
	s.stack.Push(history.NewSetPadding(s.doc.Handle(), id, in))
}
