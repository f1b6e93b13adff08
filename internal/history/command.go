package history

import (
	"github.com/mosaicedit/mosaic/internal/layout"
	"github.com/mosaicedit/mosaic/internal/logger"
)

// Command is one reversible unit of document mutation. Redo and Undo
// are total: they mutate the document through its handle when they can
// and degrade to a warned no-op when they cannot (revoked handle,
// vanished target, incomplete payload).
type Command interface {
	// Redo applies the command's effect. The first Redo is invoked by
	// Stack.Push and must be safe when the effect is already present.
	Redo()

	// Undo reverts the command's effect.
	Undo()

	// Label is the human-readable name shown next to undo/redo actions.
	Label() string

	// MergeTag classifies the command for coalescing.
	MergeTag() MergeTag
}

// base carries the state every concrete command shares: the revocable
// document handle, the display label, the merge tag and the target key
// merge predicates compare.
type base struct {
	doc   layout.Handle
	label string
	tag   MergeTag
	key   string
}

func (b *base) Label() string      { return b.label }
func (b *base) MergeTag() MergeTag { return b.tag }

// resolve returns the live document, warning once per failed operation.
func (b *base) resolve() (*layout.Document, bool) {
	doc, ok := b.doc.Resolve()
	if !ok {
		logger.Warnf("history: %s: document no longer available", b.label)
	}
	return doc, ok
}

// mutateRegion runs fn against the target region inside a notification
// bracket. A missing target is a warned no-op; the region is never
// recreated under its old id.
func (b *base) mutateRegion(fn func(r *layout.Region)) {
	doc, ok := b.resolve()
	if !ok {
		return
	}
	doc.BeginBatch()
	defer doc.EndBatch()

	r, ok := doc.Get(b.key)
	if !ok {
		logger.Warnf("history: %s: region %q missing", b.label, b.key)
		return
	}
	fn(&r)
	doc.Set(b.key, r)
}

// oneShot suppresses the first Redo of a command whose effect was
// applied at construction time. Later Redo calls (after an Undo) run
// normally.
type oneShot struct {
	spent bool
}

// skip reports whether this Redo call is the suppressed first one.
func (o *oneShot) skip() bool {
	if !o.spent {
		o.spent = true
		return true
	}
	return false
}
