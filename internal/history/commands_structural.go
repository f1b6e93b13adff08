package history

import (
	"github.com/mosaicedit/mosaic/internal/layout"
	"github.com/mosaicedit/mosaic/internal/logger"
)

// ReplaceCollectionCommand backs the structural edits: inserting a
// region (expanding into its neighbors), splitting a region in two, and
// clearing the canvas. These touch several regions at once, so instead
// of per-field diffs the command captures full before/after snapshots
// of the collection and undoes/redoes via one atomic ReplaceAll —
// no observer ever sees a partially-applied intermediate state.
//
// The constructor applies the new collection immediately for live
// feedback and arms a one-shot guard, so the first Redo run by Push is
// swallowed rather than swapping the collection a second time.
type ReplaceCollectionCommand struct {
	base
	oneShot
	valid  bool
	before []layout.Region
	after  []layout.Region
}

// NewInsertRegion inserts r into the document, shrinking overlapping
// neighbors to make room.
func NewInsertRegion(doc layout.Handle, r layout.Region) *ReplaceCollectionCommand {
	c := &ReplaceCollectionCommand{
		base: base{doc: doc, label: "Insert region", tag: MergeNone, key: r.ID},
	}
	if !r.IsValid() {
		logger.Warnf("history: %s: invalid region payload", c.label)
		return c
	}
	d, ok := c.resolve()
	if !ok {
		return c
	}
	c.before = d.Snapshot()
	c.after = layout.ArrangeInsert(c.before, r)
	c.valid = true
	c.applyLive(d)
	return c
}

// NewSplitRegion splits the identified region in two; the second half
// takes newID. Vertical splits leave the halves side by side.
func NewSplitRegion(doc layout.Handle, id string, vertical bool, newID string) *ReplaceCollectionCommand {
	c := &ReplaceCollectionCommand{
		base: base{doc: doc, label: "Split region", tag: MergeNone, key: id},
	}
	if newID == "" {
		logger.Warnf("history: %s: empty id for new region", c.label)
		return c
	}
	d, ok := c.resolve()
	if !ok {
		return c
	}
	before := d.Snapshot()
	after, ok := layout.ArrangeSplit(before, id, vertical, newID)
	if !ok {
		logger.Warnf("history: %s: region %q missing or too small", c.label, id)
		return c
	}
	c.before = before
	c.after = after
	c.valid = true
	c.applyLive(d)
	return c
}

// NewClearRegions removes every region from the document.
func NewClearRegions(doc layout.Handle) *ReplaceCollectionCommand {
	c := &ReplaceCollectionCommand{
		base: base{doc: doc, label: "Clear canvas", tag: MergeNone},
	}
	d, ok := c.resolve()
	if !ok {
		return c
	}
	c.before = d.Snapshot()
	c.after = nil
	c.valid = true
	c.applyLive(d)
	return c
}

// applyLive swaps in the new collection at construction time.
func (c *ReplaceCollectionCommand) applyLive(d *layout.Document) {
	d.BeginBatch()
	d.ReplaceAll(c.after)
	d.EndBatch()
}

func (c *ReplaceCollectionCommand) Redo() {
	if !c.valid {
		logger.Warnf("history: %s: incomplete payload", c.label)
		return
	}
	if c.skip() {
		return // applied at construction
	}
	c.replaceWith(c.after)
}

func (c *ReplaceCollectionCommand) Undo() {
	if !c.valid {
		logger.Warnf("history: %s: incomplete payload", c.label)
		return
	}
	c.replaceWith(c.before)
}

func (c *ReplaceCollectionCommand) replaceWith(snapshot []layout.Region) {
	doc, ok := c.resolve()
	if !ok {
		return
	}
	doc.BeginBatch()
	defer doc.EndBatch()
	doc.ReplaceAll(snapshot)
}

// Valid reports whether the command captured a usable snapshot pair.
// Callers can skip pushing inert commands.
func (c *ReplaceCollectionCommand) Valid() bool { return c.valid }
