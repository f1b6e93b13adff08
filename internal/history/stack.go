package history

import (
	"github.com/mosaicedit/mosaic/internal/event"
	"github.com/mosaicedit/mosaic/internal/logger"
)

// TopicState carries State events on the bus after every stack change.
const TopicState event.Topic = "history.state"

// DefaultMaxDepth bounds the history when no explicit depth is given.
const DefaultMaxDepth = 100

// cleanUnreachable marks a clean position that was truncated or evicted
// and can no longer be reached by undo/redo. It stays unreachable until
// the next SetClean.
const cleanUnreachable = -1

// State is the observable stack surface the editor session re-reads
// after every operation.
type State struct {
	CanUndo   bool
	CanRedo   bool
	UndoLabel string
	RedoLabel string
	Depth     int
	MaxDepth  int
	Clean     bool
}

// Option configures a Stack during creation.
type Option func(*Stack)

// WithBus publishes a State event on the bus after every change.
func WithBus(bus *event.Bus) Option {
	return func(s *Stack) { s.bus = bus }
}

// WithStateFunc invokes fn with the fresh State after every change.
func WithStateFunc(fn func(State)) Option {
	return func(s *Stack) { s.onState = fn }
}

// Stack owns the ordered command history. The cursor is the index of
// the next redo-able entry: everything below it can be undone,
// everything at or above it can be redone.
//
// Like the document it edits, the stack belongs to a single logical
// thread; its operations are synchronous and never fail.
type Stack struct {
	entries    []Command
	cursor     int
	maxDepth   int
	cleanIndex int
	macro      *macroFrame

	bus     *event.Bus
	onState func(State)
}

// NewStack creates an empty stack. A maxDepth of zero or less selects
// DefaultMaxDepth.
func NewStack(maxDepth int, opts ...Option) *Stack {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	s := &Stack{maxDepth: maxDepth}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push takes ownership of cmd. With a macro open the command becomes a
// child of the composite; otherwise the redo tail is truncated, the
// command is merged into the top entry when tags and targets agree, and
// appended as a fresh entry when not. Push runs the command's first
// Redo (merged commands excepted; their surviving entry re-applies the
// merged state itself).
func (s *Stack) Push(cmd Command) {
	if cmd == nil {
		logger.Warnf("history: Push: nil command")
		return
	}
	if s.macro != nil {
		s.macro.cmd.add(cmd)
		cmd.Redo()
		return
	}

	s.truncate()
	if s.tryMerge(cmd) {
		s.republish()
		return
	}

	s.entries = append(s.entries, cmd)
	cmd.Redo()
	s.enforceDepth()
	s.cursor = len(s.entries)
	s.republish()
}

// Undo reverts the entry below the cursor. A no-op at the bottom of the
// stack or while a macro is open.
func (s *Stack) Undo() {
	if s.macro != nil {
		logger.Warnf("history: Undo while a macro is open")
		return
	}
	if s.cursor == 0 {
		return
	}
	s.cursor--
	s.entries[s.cursor].Undo()
	s.republish()
}

// Redo re-applies the entry at the cursor. A no-op at the top of the
// stack or while a macro is open.
func (s *Stack) Redo() {
	if s.macro != nil {
		logger.Warnf("history: Redo while a macro is open")
		return
	}
	if s.cursor == len(s.entries) {
		return
	}
	s.entries[s.cursor].Redo()
	s.cursor++
	s.republish()
}

// Clear discards the whole history, any open macro included, and
// resets the clean marker to the (now empty) current position.
func (s *Stack) Clear() {
	s.entries = nil
	s.cursor = 0
	s.cleanIndex = 0
	s.macro = nil
	s.republish()
}

// BeginMacro opens a composite command; until the matching EndMacro,
// pushes append children instead of stack entries. Nested calls only
// increment a depth counter.
func (s *Stack) BeginMacro(label string) {
	if s.macro != nil {
		s.macro.depth++
		return
	}
	s.macro = &macroFrame{cmd: newMacro(label)}
}

// EndMacro closes one macro level. The outermost EndMacro commits the
// composite as a single entry; empty macros commit nothing. The
// children already ran their first Redo when they were pushed, so the
// composite is appended without replaying it.
func (s *Stack) EndMacro() {
	if s.macro == nil {
		logger.Warnf("history: EndMacro without BeginMacro")
		return
	}
	if s.macro.depth > 0 {
		s.macro.depth--
		return
	}

	m := s.macro.cmd
	s.macro = nil
	if m.Len() == 0 {
		return
	}

	s.truncate()
	s.entries = append(s.entries, m)
	s.enforceDepth()
	s.cursor = len(s.entries)
	s.republish()
}

// CancelMacro abandons an open macro without creating a history entry.
// Effects of children already executed remain on the document.
func (s *Stack) CancelMacro() {
	if s.macro == nil {
		return
	}
	s.macro = nil
}

// InMacro reports whether a macro is open.
func (s *Stack) InMacro() bool { return s.macro != nil }

// SetClean marks the current cursor position as the saved state.
func (s *Stack) SetClean() {
	s.cleanIndex = s.cursor
	s.republish()
}

// IsClean reports whether the cursor sits at the saved position. False
// whenever the clean entry was truncated or evicted.
func (s *Stack) IsClean() bool { return s.cursor == s.cleanIndex }

// CanUndo reports whether an entry is available below the cursor.
func (s *Stack) CanUndo() bool { return s.cursor > 0 }

// CanRedo reports whether an entry is available at the cursor.
func (s *Stack) CanRedo() bool { return s.cursor < len(s.entries) }

// UndoLabel returns the label of the next undo target, or "".
func (s *Stack) UndoLabel() string {
	if s.cursor == 0 {
		return ""
	}
	return s.entries[s.cursor-1].Label()
}

// RedoLabel returns the label of the next redo target, or "".
func (s *Stack) RedoLabel() string {
	if s.cursor == len(s.entries) {
		return ""
	}
	return s.entries[s.cursor].Label()
}

// Depth returns the number of history entries.
func (s *Stack) Depth() int { return len(s.entries) }

// MaxDepth returns the current depth bound.
func (s *Stack) MaxDepth() int { return s.maxDepth }

// SetMaxDepth changes the depth bound, evicting oldest entries when the
// history already exceeds it. Values of zero or less select
// DefaultMaxDepth.
func (s *Stack) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	s.maxDepth = n
	s.enforceDepth()
	s.republish()
}

// State returns the observable stack surface.
func (s *Stack) State() State {
	return State{
		CanUndo:   s.CanUndo(),
		CanRedo:   s.CanRedo(),
		UndoLabel: s.UndoLabel(),
		RedoLabel: s.RedoLabel(),
		Depth:     s.Depth(),
		MaxDepth:  s.maxDepth,
		Clean:     s.IsClean(),
	}
}

// truncate discards the redo tail at the cursor. A clean position
// inside the discarded tail becomes unreachable.
func (s *Stack) truncate() {
	if s.cursor >= len(s.entries) {
		return
	}
	if s.cleanIndex > s.cursor {
		s.cleanIndex = cleanUnreachable
	}
	s.entries = s.entries[:s.cursor]
}

// tryMerge folds cmd into the current top entry when tags match, the
// tag is mergeable, and the top's own predicate accepts it. The entry
// that represents the saved state is never merged into: the document
// would drift from disk while IsClean kept reporting true.
func (s *Stack) tryMerge(cmd Command) bool {
	if len(s.entries) == 0 {
		return false
	}
	if cmd.MergeTag() == MergeNone {
		return false
	}
	top := s.entries[len(s.entries)-1]
	if top.MergeTag() != cmd.MergeTag() {
		return false
	}
	if s.cleanIndex == s.cursor {
		return false
	}
	m, ok := top.(Merger)
	if !ok {
		return false
	}
	return m.Merge(cmd)
}

// enforceDepth evicts oldest entries until the history fits the bound.
// Evicted entries are dropped without invoking their Undo; when the
// clean position is evicted it becomes unreachable.
func (s *Stack) enforceDepth() {
	excess := len(s.entries) - s.maxDepth
	if excess <= 0 {
		return
	}
	kept := make([]Command, len(s.entries)-excess)
	copy(kept, s.entries[excess:])
	s.entries = kept

	s.cursor -= excess
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cleanIndex != cleanUnreachable {
		s.cleanIndex -= excess
		if s.cleanIndex < 0 {
			s.cleanIndex = cleanUnreachable
		}
	}
}

// republish recomputes the observable state and hands it to the bus
// and the callback, in that order.
func (s *Stack) republish() {
	st := s.State()
	if s.bus != nil {
		s.bus.Publish(TopicState, st)
	}
	if s.onState != nil {
		s.onState(st)
	}
}
