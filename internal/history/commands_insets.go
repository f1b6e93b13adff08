package history

import (
	"github.com/mosaicedit/mosaic/internal/layout"
	"github.com/mosaicedit/mosaic/internal/logger"
)

// SetInsetsCommand overrides a region's gap (spacing to its neighbors)
// or padding (spacing to its own content). The two kinds carry distinct
// merge tags, so a run of gap tweaks coalesces without ever folding
// into a padding edit on the same region.
type SetInsetsCommand struct {
	base
	gap       bool
	oldInsets layout.Insets
	newInsets layout.Insets
	valid     bool
}

// NewSetGap captures a gap override for the region.
func NewSetGap(doc layout.Handle, id string, in layout.Insets) *SetInsetsCommand {
	return newSetInsets(doc, id, "Set gap", MergeGap, true, in)
}

// NewSetPadding captures a padding override for the region.
func NewSetPadding(doc layout.Handle, id string, in layout.Insets) *SetInsetsCommand {
	return newSetInsets(doc, id, "Set padding", MergePadding, false, in)
}

func newSetInsets(doc layout.Handle, id, label string, tag MergeTag, gap bool, in layout.Insets) *SetInsetsCommand {
	c := &SetInsetsCommand{
		base:      base{doc: doc, label: label, tag: tag, key: id},
		gap:       gap,
		newInsets: in,
	}
	d, ok := doc.Resolve()
	if !ok {
		logger.Warnf("history: %s: document no longer available", label)
		return c
	}
	r, found := d.Get(id)
	if !found {
		logger.Warnf("history: %s: region %q missing", label, id)
		return c
	}
	if gap {
		c.oldInsets = r.Gap
	} else {
		c.oldInsets = r.Padding
	}
	c.valid = true
	return c
}

func (c *SetInsetsCommand) Redo() { c.apply(c.newInsets) }
func (c *SetInsetsCommand) Undo() { c.apply(c.oldInsets) }

// Merge folds a later override of the same kind on the same region into
// this entry.
func (c *SetInsetsCommand) Merge(incoming Command) bool {
	o, ok := incoming.(*SetInsetsCommand)
	if !ok || o.key != c.key || o.gap != c.gap || !o.valid {
		return false
	}
	c.newInsets = o.newInsets
	c.apply(c.newInsets)
	return true
}

func (c *SetInsetsCommand) apply(in layout.Insets) {
	if !c.valid {
		logger.Warnf("history: %s: incomplete payload", c.label)
		return
	}
	c.mutateRegion(func(r *layout.Region) {
		if c.gap {
			r.Gap = in
		} else {
			r.Padding = in
		}
	})
}
