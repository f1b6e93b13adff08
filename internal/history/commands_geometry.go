package history

import (
	"github.com/mosaicedit/mosaic/internal/layout"
	"github.com/mosaicedit/mosaic/internal/logger"
)

// MoveRegionCommand rewrites a region's frame after a drag. Consecutive
// moves of the same region merge into one entry, so a whole drag undoes
// in one step. The frame write is a plain assignment, making the first
// Redo at push time a harmless reassertion.
type MoveRegionCommand struct {
	base
	oldFrame layout.Rect
	newFrame layout.Rect
}

// NewMoveRegion captures a move from oldFrame to newFrame. The caller
// has already applied newFrame to the document for live feedback.
func NewMoveRegion(doc layout.Handle, id string, oldFrame, newFrame layout.Rect) *MoveRegionCommand {
	return &MoveRegionCommand{
		base:     base{doc: doc, label: "Move region", tag: MergeMove, key: id},
		oldFrame: oldFrame,
		newFrame: newFrame,
	}
}

func (c *MoveRegionCommand) Redo() { c.setFrame(c.newFrame) }
func (c *MoveRegionCommand) Undo() { c.setFrame(c.oldFrame) }

// Merge folds a later move of the same region into this entry, keeping
// the original old frame and adopting the newcomer's destination.
func (c *MoveRegionCommand) Merge(incoming Command) bool {
	o, ok := incoming.(*MoveRegionCommand)
	if !ok || o.key != c.key {
		return false
	}
	c.newFrame = o.newFrame
	c.setFrame(c.newFrame) // the incoming command's Redo never runs
	return true
}

func (c *MoveRegionCommand) setFrame(f layout.Rect) {
	if f.IsEmpty() {
		logger.Warnf("history: %s: empty frame payload", c.label)
		return
	}
	c.mutateRegion(func(r *layout.Region) { r.Frame = f })
}

// ResizeRegionCommand rewrites a region's frame after a resize gesture.
// Identical mechanics to MoveRegionCommand under a different merge tag,
// so interleaved moves and resizes stay separate undo steps.
type ResizeRegionCommand struct {
	base
	oldFrame layout.Rect
	newFrame layout.Rect
}

// NewResizeRegion captures a resize from oldFrame to newFrame.
func NewResizeRegion(doc layout.Handle, id string, oldFrame, newFrame layout.Rect) *ResizeRegionCommand {
	return &ResizeRegionCommand{
		base:     base{doc: doc, label: "Resize region", tag: MergeResize, key: id},
		oldFrame: oldFrame,
		newFrame: newFrame,
	}
}

func (c *ResizeRegionCommand) Redo() { c.setFrame(c.newFrame) }
func (c *ResizeRegionCommand) Undo() { c.setFrame(c.oldFrame) }

// Merge folds a later resize of the same region into this entry.
func (c *ResizeRegionCommand) Merge(incoming Command) bool {
	o, ok := incoming.(*ResizeRegionCommand)
	if !ok || o.key != c.key {
		return false
	}
	c.newFrame = o.newFrame
	c.setFrame(c.newFrame)
	return true
}

func (c *ResizeRegionCommand) setFrame(f layout.Rect) {
	if f.IsEmpty() {
		logger.Warnf("history: %s: empty frame payload", c.label)
		return
	}
	c.mutateRegion(func(r *layout.Region) { r.Frame = f })
}
