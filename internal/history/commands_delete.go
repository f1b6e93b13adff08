package history

import (
	"github.com/mosaicedit/mosaic/internal/layout"
	"github.com/mosaicedit/mosaic/internal/logger"
)

// DeleteRegionCommand removes one region. Undo reinserts the captured
// snapshot under its original id; if another region occupies that id by
// the time the undo runs, the restore is refused rather than replacing
// a different entity.
type DeleteRegionCommand struct {
	base
	snapshot layout.Region
	valid    bool
}

// NewDeleteRegion captures a deletion. The region's snapshot is taken
// at construction; the removal itself happens on the first Redo run by
// Push.
func NewDeleteRegion(doc layout.Handle, id string) *DeleteRegionCommand {
	c := &DeleteRegionCommand{
		base: base{doc: doc, label: "Delete region", tag: MergeNone, key: id},
	}
	d, ok := doc.Resolve()
	if !ok {
		logger.Warnf("history: %s: document no longer available", c.label)
		return c
	}
	r, found := d.Get(id)
	if !found {
		logger.Warnf("history: %s: region %q missing", c.label, id)
		return c
	}
	c.snapshot = r
	c.valid = true
	return c
}

func (c *DeleteRegionCommand) Redo() {
	if !c.valid {
		logger.Warnf("history: %s: incomplete payload", c.label)
		return
	}
	doc, ok := c.resolve()
	if !ok {
		return
	}
	doc.BeginBatch()
	defer doc.EndBatch()
	doc.Delete(c.snapshot.ID)
}

func (c *DeleteRegionCommand) Undo() {
	if !c.valid {
		logger.Warnf("history: %s: incomplete payload", c.label)
		return
	}
	doc, ok := c.resolve()
	if !ok {
		return
	}
	doc.BeginBatch()
	defer doc.EndBatch()
	doc.Restore(c.snapshot, true)
}

// Valid reports whether the command captured a deletable region.
func (c *DeleteRegionCommand) Valid() bool { return c.valid }
