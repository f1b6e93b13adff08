package history

import (
	"fmt"

	"github.com/mosaicedit/mosaic/internal/layout"
	"github.com/mosaicedit/mosaic/internal/logger"
)

// SetParamCommand edits one named parameter on a region (corner radius,
// opacity, weight — whatever the host layers onto regions). Consecutive
// edits of the same parameter on the same region merge, so a slider
// drag lands as one undo step. Undoing an edit that introduced the
// parameter removes it again instead of leaving a zero behind.
type SetParamCommand struct {
	base
	name     string
	oldValue float64
	newValue float64
	hadOld   bool
	valid    bool
}

// NewSetParam captures a parameter edit. The previous value (or its
// absence) is read from the live document at construction.
func NewSetParam(doc layout.Handle, id, name string, value float64) *SetParamCommand {
	c := &SetParamCommand{
		base:     base{doc: doc, label: fmt.Sprintf("Set %s", name), tag: MergeParam, key: id},
		name:     name,
		newValue: value,
	}
	if name == "" {
		logger.Warnf("history: Set parameter: empty parameter name")
		c.label = "Set parameter"
		return c
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
	c.oldValue, c.hadOld = r.Params[name]
	c.valid = true
	return c
}

func (c *SetParamCommand) Redo() {
	if !c.valid {
		logger.Warnf("history: %s: incomplete payload", c.label)
		return
	}
	c.mutateRegion(func(r *layout.Region) {
		if r.Params == nil {
			r.Params = make(map[string]float64, 1)
		}
		r.Params[c.name] = c.newValue
	})
}

func (c *SetParamCommand) Undo() {
	if !c.valid {
		logger.Warnf("history: %s: incomplete payload", c.label)
		return
	}
	c.mutateRegion(func(r *layout.Region) {
		if !c.hadOld {
			delete(r.Params, c.name)
			return
		}
		if r.Params == nil {
			r.Params = make(map[string]float64, 1)
		}
		r.Params[c.name] = c.oldValue
	})
}

// Merge folds a later edit of the same parameter on the same region
// into this entry.
func (c *SetParamCommand) Merge(incoming Command) bool {
	o, ok := incoming.(*SetParamCommand)
	if !ok || o.key != c.key || o.name != c.name || !o.valid {
		return false
	}
	c.newValue = o.newValue
	c.Redo()
	return true
}
