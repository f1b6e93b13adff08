package history

import (
	"sort"
	"strings"

	"github.com/mosaicedit/mosaic/internal/layout"
	"github.com/mosaicedit/mosaic/internal/logger"
)

// SetFillCommand recolors one or more regions in a single step. The old
// fill of every target is captured at construction; undo and redo run
// inside one notification bracket so recoloring five regions emits one
// aggregate change, not five.
type SetFillCommand struct {
	base
	ids  []string
	old  map[string]string
	fill string
}

// NewSetFill captures a fill change for the given regions. The color is
// normalized; an unparseable color yields an inert command that warns
// on use.
func NewSetFill(doc layout.Handle, ids []string, fill string) *SetFillCommand {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	label := "Fill region"
	if len(sorted) > 1 {
		label = "Fill regions"
	}
	c := &SetFillCommand{
		base: base{doc: doc, label: label, tag: MergeFill, key: strings.Join(sorted, "\x1f")},
		ids:  sorted,
		old:  make(map[string]string, len(sorted)),
	}

	normalized, err := layout.NormalizeColor(fill)
	if err != nil {
		logger.Warnf("history: %s: %v", label, err)
		return c
	}
	c.fill = normalized

	if d, ok := doc.Resolve(); ok {
		for _, id := range sorted {
			if r, found := d.Get(id); found {
				c.old[id] = r.Fill
			}
		}
	}
	return c
}

func (c *SetFillCommand) Redo() {
	if c.fill == "" || len(c.ids) == 0 {
		logger.Warnf("history: %s: incomplete payload", c.label)
		return
	}
	c.applyFill(func(string) string { return c.fill })
}

func (c *SetFillCommand) Undo() {
	if len(c.old) == 0 {
		logger.Warnf("history: %s: no captured state to restore", c.label)
		return
	}
	c.applyFill(func(id string) string { return c.old[id] })
}

// Merge folds a later recolor of the same region set into this entry.
func (c *SetFillCommand) Merge(incoming Command) bool {
	o, ok := incoming.(*SetFillCommand)
	if !ok || o.key != c.key || o.fill == "" {
		return false
	}
	c.fill = o.fill
	c.Redo() // the incoming command's Redo never runs
	return true
}

// applyFill writes pick(id) to every target inside one bracket. Targets
// deleted since capture are skipped; an id is never resurrected just to
// recolor it.
func (c *SetFillCommand) applyFill(pick func(id string) string) {
	doc, ok := c.resolve()
	if !ok {
		return
	}
	doc.BeginBatch()
	defer doc.EndBatch()

	for _, id := range c.ids {
		fill := pick(id)
		if fill == "" {
			continue
		}
		r, found := doc.Get(id)
		if !found {
			logger.Warnf("history: %s: region %q missing", c.label, id)
			continue
		}
		r.Fill = fill
		doc.Set(id, r)
	}
}
