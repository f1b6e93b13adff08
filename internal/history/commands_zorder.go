package history

import (
	"github.com/mosaicedit/mosaic/internal/layout"
	"github.com/mosaicedit/mosaic/internal/logger"
)

// ZOrderCommand moves a region one step up or down the stacking order.
// Z-order changes never merge: each step is its own undo entry, since
// collapsing "raise, raise, lower" into one step would lie about what
// the user did.
type ZOrderCommand struct {
	base
	oldZ  int
	newZ  int
	valid bool
}

// NewRaiseRegion captures a one-step raise of the region's z-index.
func NewRaiseRegion(doc layout.Handle, id string) *ZOrderCommand {
	return newZOrder(doc, id, "Raise region", +1)
}

// NewLowerRegion captures a one-step lower of the region's z-index.
func NewLowerRegion(doc layout.Handle, id string) *ZOrderCommand {
	return newZOrder(doc, id, "Lower region", -1)
}

func newZOrder(doc layout.Handle, id, label string, delta int) *ZOrderCommand {
	c := &ZOrderCommand{
		base: base{doc: doc, label: label, tag: MergeNone, key: id},
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
	c.oldZ = r.ZIndex
	c.newZ = r.ZIndex + delta
	c.valid = true
	return c
}

func (c *ZOrderCommand) Redo() { c.setZ(c.newZ) }
func (c *ZOrderCommand) Undo() { c.setZ(c.oldZ) }

func (c *ZOrderCommand) setZ(z int) {
	if !c.valid {
		logger.Warnf("history: %s: incomplete payload", c.label)
		return
	}
	c.mutateRegion(func(r *layout.Region) { r.ZIndex = z })
}
