package layout

import (
	"sort"
	"sync/atomic"

	"github.com/mosaicedit/mosaic/internal/event"
	"github.com/mosaicedit/mosaic/internal/logger"
)

// TopicChanged carries Changed events on the bus.
const TopicChanged event.Topic = "layout.changed"

// Changed is the aggregate change notification emitted after a
// mutation, or after the outermost EndBatch when mutations were
// bracketed. IDs lists every region touched since the bracket opened.
type Changed struct {
	IDs       []string
	Selection bool
}

// Document is the live layout: the mutation surface commands act on.
//
// All methods must be called from the editor's single logical thread.
// Mutations made inside a BeginBatch/EndBatch bracket are coalesced
// into one Changed notification at the outermost EndBatch.
type Document struct {
	regions   map[string]Region
	selection []string

	batchDepth int
	pendingIDs map[string]struct{}
	pendingSel bool
	bus        *event.Bus
	closed     atomic.Bool
}

// NewDocument creates an empty document. A nil bus disables
// notifications, which is convenient in tests that only probe state.
func NewDocument(bus *event.Bus) *Document {
	return &Document{
		regions:    make(map[string]Region),
		pendingIDs: make(map[string]struct{}),
		bus:        bus,
	}
}

// Handle returns a revocable, non-owning reference to the document.
// Handles resolve to nil after Close.
func (d *Document) Handle() Handle {
	return Handle{doc: d}
}

// Close revokes every handle to the document. Commands still holding
// handles become silent no-ops.
func (d *Document) Close() {
	d.closed.Store(true)
}

// Len returns the number of regions.
func (d *Document) Len() int { return len(d.regions) }

// Has reports whether a region with the given id exists.
func (d *Document) Has(id string) bool {
	_, ok := d.regions[id]
	return ok
}

// Get returns a copy of the region with the given id.
func (d *Document) Get(id string) (Region, bool) {
	r, ok := d.regions[id]
	if !ok {
		return Region{}, false
	}
	return r.Clone(), true
}

// Set updates an existing region. Updating an unknown id is a warned
// no-op; regions enter the document through Restore or ReplaceAll.
func (d *Document) Set(id string, r Region) bool {
	if !d.Has(id) {
		logger.Warnf("layout: Set: no region %q", id)
		return false
	}
	r.ID = id
	d.regions[id] = r.Clone()
	d.changed(id)
	return true
}

// Delete removes a region. Removing an unknown id is a warned no-op.
func (d *Document) Delete(id string) bool {
	if !d.Has(id) {
		logger.Warnf("layout: Delete: no region %q", id)
		return false
	}
	delete(d.regions, id)
	d.dropFromSelection(id)
	d.changed(id)
	return true
}

// Restore reinserts a previously captured region. With allowIDReuse the
// region keeps its original id; if that id is already occupied the call
// is a warned no-op, since silently replacing a different entity under
// a reused id would corrupt later undos. Without reuse the caller must
// have assigned a fresh id.
func (d *Document) Restore(r Region, allowIDReuse bool) bool {
	if r.ID == "" {
		logger.Warnf("layout: Restore: empty region id")
		return false
	}
	if d.Has(r.ID) {
		if allowIDReuse {
			logger.Warnf("layout: Restore: id %q already occupied", r.ID)
		} else {
			logger.Warnf("layout: Restore: id %q exists and reuse not allowed", r.ID)
		}
		return false
	}
	d.regions[r.ID] = r.Clone()
	d.changed(r.ID)
	return true
}

// Snapshot returns a deep copy of the whole collection, ordered by id
// for determinism.
func (d *Document) Snapshot() []Region {
	out := make([]Region, 0, len(d.regions))
	for _, r := range d.regions {
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ReplaceAll atomically swaps the whole collection for the given
// snapshot. Every region present before or after is reported changed.
func (d *Document) ReplaceAll(regions []Region) {
	for id := range d.regions {
		d.changed(id)
	}
	d.regions = make(map[string]Region, len(regions))
	for _, r := range regions {
		if r.ID == "" {
			logger.Warnf("layout: ReplaceAll: skipping region with empty id")
			continue
		}
		d.regions[r.ID] = r.Clone()
		d.changed(r.ID)
	}
	d.pruneSelection()
}

// Selection returns a copy of the selected region ids.
func (d *Document) Selection() []string {
	out := make([]string, len(d.selection))
	copy(out, d.selection)
	return out
}

// SetSelection replaces the selection. Unknown ids are dropped.
func (d *Document) SetSelection(ids []string) {
	sel := make([]string, 0, len(ids))
	for _, id := range ids {
		if d.Has(id) {
			sel = append(sel, id)
		}
	}
	d.selection = sel
	d.selectionChanged()
}

// BeginBatch opens (or nests into) a notification bracket. While a
// bracket is open, per-region notifications are buffered.
func (d *Document) BeginBatch() {
	d.batchDepth++
}

// EndBatch closes one bracket level. Closing the outermost bracket
// emits exactly one aggregate Changed notification covering everything
// touched since the bracket opened.
func (d *Document) EndBatch() {
	if d.batchDepth == 0 {
		logger.Warnf("layout: EndBatch without matching BeginBatch")
		return
	}
	d.batchDepth--
	if d.batchDepth == 0 {
		d.flush()
	}
}

// InBatch reports whether a notification bracket is open.
func (d *Document) InBatch() bool { return d.batchDepth > 0 }

func (d *Document) changed(id string) {
	if d.batchDepth > 0 {
		d.pendingIDs[id] = struct{}{}
		return
	}
	d.emit(Changed{IDs: []string{id}})
}

func (d *Document) selectionChanged() {
	if d.batchDepth > 0 {
		d.pendingSel = true
		return
	}
	d.emit(Changed{Selection: true})
}

func (d *Document) flush() {
	if len(d.pendingIDs) == 0 && !d.pendingSel {
		return
	}
	ids := make([]string, 0, len(d.pendingIDs))
	for id := range d.pendingIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	ev := Changed{IDs: ids, Selection: d.pendingSel}
	d.pendingIDs = make(map[string]struct{})
	d.pendingSel = false
	d.emit(ev)
}

func (d *Document) emit(ev Changed) {
	if d.bus != nil {
		d.bus.Publish(TopicChanged, ev)
	}
}

func (d *Document) dropFromSelection(id string) {
	for i, sel := range d.selection {
		if sel == id {
			d.selection = append(d.selection[:i:i], d.selection[i+1:]...)
			d.selectionChanged()
			return
		}
	}
}

func (d *Document) pruneSelection() {
	kept := d.selection[:0]
	for _, id := range d.selection {
		if d.Has(id) {
			kept = append(kept, id)
		}
	}
	if len(kept) != len(d.selection) {
		d.selection = kept
		d.selectionChanged()
	}
}
