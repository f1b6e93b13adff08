package history

import (
	"github.com/mosaicedit/mosaic/internal/layout"
)

// selectionKey is the shared target key for selection commands: there
// is only one selection, so consecutive selection changes always merge.
const selectionKey = "selection"

// SetSelectionCommand records a selection change so undo restores what
// the user had selected alongside what the document looked like.
type SetSelectionCommand struct {
	base
	oldIDs []string
	newIDs []string
}

// NewSetSelection captures a selection change to ids. The outgoing
// selection is read from the live document at construction.
func NewSetSelection(doc layout.Handle, ids []string) *SetSelectionCommand {
	c := &SetSelectionCommand{
		base:   base{doc: doc, label: "Change selection", tag: MergeSelection, key: selectionKey},
		newIDs: append([]string(nil), ids...),
	}
	if d, ok := doc.Resolve(); ok {
		c.oldIDs = d.Selection()
	}
	return c
}

func (c *SetSelectionCommand) Redo() { c.apply(c.newIDs) }
func (c *SetSelectionCommand) Undo() { c.apply(c.oldIDs) }

// Merge folds a later selection change into this entry, preserving the
// selection that was current before the run of changes began.
func (c *SetSelectionCommand) Merge(incoming Command) bool {
	o, ok := incoming.(*SetSelectionCommand)
	if !ok {
		return false
	}
	c.newIDs = o.newIDs
	c.apply(c.newIDs)
	return true
}

func (c *SetSelectionCommand) apply(ids []string) {
	doc, ok := c.resolve()
	if !ok {
		return
	}
	doc.BeginBatch()
	defer doc.EndBatch()
	doc.SetSelection(ids)
}
