package history

import (
	"reflect"
	"testing"

	"github.com/mosaicedit/mosaic/internal/event"
	"github.com/mosaicedit/mosaic/internal/layout"
)

func testRegion(id string, x, y, w, h int) layout.Region {
	return layout.Region{
		ID:    id,
		Name:  "region " + id,
		Frame: layout.Rect{X: x, Y: y, W: w, H: h},
		Fill:  "#336699",
	}
}

func newTestDoc(bus *event.Bus, regions ...layout.Region) *layout.Document {
	d := layout.NewDocument(bus)
	d.ReplaceAll(regions)
	return d
}

// pushMove applies a frame change live (as a gesture would) and pushes
// the command capturing it.
func pushMove(s *Stack, d *layout.Document, id string, to layout.Rect) {
	r, _ := d.Get(id)
	old := r.Frame
	r.Frame = to
	d.Set(id, r)
	s.Push(NewMoveRegion(d.Handle(), id, old, to))
}

func pushResize(s *Stack, d *layout.Document, id string, to layout.Rect) {
	r, _ := d.Get(id)
	old := r.Frame
	r.Frame = to
	d.Set(id, r)
	s.Push(NewResizeRegion(d.Handle(), id, old, to))
}

func frameOf(t *testing.T, d *layout.Document, id string) layout.Rect {
	t.Helper()
	r, ok := d.Get(id)
	if !ok {
		t.Fatalf("region %q missing", id)
	}
	return r.Frame
}

func TestPushUpdatesObservables(t *testing.T) {
	d := newTestDoc(nil,
		testRegion("a", 0, 0, 4, 4),
		testRegion("b", 5, 0, 4, 4),
		testRegion("c", 10, 0, 4, 4),
	)
	s := NewStack(100)

	pushMove(s, d, "a", layout.Rect{X: 1, Y: 0, W: 4, H: 4})
	pushMove(s, d, "b", layout.Rect{X: 6, Y: 0, W: 4, H: 4})
	pushMove(s, d, "c", layout.Rect{X: 11, Y: 0, W: 4, H: 4})

	if !s.CanUndo() {
		t.Error("CanUndo false after pushes")
	}
	if s.CanRedo() {
		t.Error("CanRedo true with nothing undone")
	}
	if s.Depth() != 3 {
		t.Errorf("Depth = %d, want 3", s.Depth())
	}
	if s.UndoLabel() != "Move region" {
		t.Errorf("UndoLabel = %q", s.UndoLabel())
	}
	if s.RedoLabel() != "" {
		t.Errorf("RedoLabel = %q, want empty", s.RedoLabel())
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	d := newTestDoc(nil,
		testRegion("a", 0, 0, 4, 4),
		testRegion("b", 5, 0, 4, 4),
	)
	s := NewStack(100)
	h := d.Handle()

	pushMove(s, d, "a", layout.Rect{X: 2, Y: 2, W: 4, H: 4})
	pushResize(s, d, "b", layout.Rect{X: 5, Y: 0, W: 8, H: 4})
	s.Push(NewSetFill(h, []string{"a", "b"}, "#ff0000"))

	want := d.Snapshot()

	for i := 0; i < 3; i++ {
		s.Undo()
	}
	if s.CanUndo() {
		t.Fatal("CanUndo true after undoing everything")
	}
	for i := 0; i < 3; i++ {
		s.Redo()
	}

	if got := d.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("round trip diverged:\n got %+v\nwant %+v", got, want)
	}
}

func TestPushTruncatesRedoTail(t *testing.T) {
	d := newTestDoc(nil, testRegion("a", 0, 0, 4, 4), testRegion("b", 5, 0, 4, 4))
	s := NewStack(100)

	pushMove(s, d, "a", layout.Rect{X: 1, Y: 0, W: 4, H: 4})   // A
	pushResize(s, d, "a", layout.Rect{X: 1, Y: 0, W: 6, H: 4}) // B
	s.Undo()
	pushMove(s, d, "b", layout.Rect{X: 7, Y: 0, W: 4, H: 4}) // C

	if s.Depth() != 2 {
		t.Errorf("Depth = %d, want 2 (A,C)", s.Depth())
	}
	if s.CanRedo() {
		t.Error("CanRedo true after truncating tail")
	}
	if s.UndoLabel() != "Move region" {
		t.Errorf("UndoLabel = %q, want the label of C", s.UndoLabel())
	}
}

func TestMergeCoalescesSameTarget(t *testing.T) {
	d := newTestDoc(nil, testRegion("z", 0, 0, 10, 4))
	s := NewStack(100)

	pushResize(s, d, "z", layout.Rect{X: 0, Y: 0, W: 20, H: 4})
	pushResize(s, d, "z", layout.Rect{X: 0, Y: 0, W: 35, H: 4})

	if s.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1 after merge", s.Depth())
	}
	if frameOf(t, d, "z").W != 35 {
		t.Errorf("width = %d, want 35", frameOf(t, d, "z").W)
	}

	s.Undo()
	if frameOf(t, d, "z").W != 10 {
		t.Errorf("undo restored width %d, want the original 10", frameOf(t, d, "z").W)
	}

	s.Redo()
	if frameOf(t, d, "z").W != 35 {
		t.Errorf("redo restored width %d, want the merged 35", frameOf(t, d, "z").W)
	}
}

func TestNoMergeAcrossTargets(t *testing.T) {
	d := newTestDoc(nil, testRegion("a", 0, 0, 4, 4), testRegion("b", 5, 0, 4, 4))
	s := NewStack(100)

	pushMove(s, d, "a", layout.Rect{X: 1, Y: 0, W: 4, H: 4})
	pushMove(s, d, "b", layout.Rect{X: 6, Y: 0, W: 4, H: 4})

	if s.Depth() != 2 {
		t.Errorf("Depth = %d, want 2: different targets must not merge", s.Depth())
	}
}

func TestNoMergeAcrossKinds(t *testing.T) {
	d := newTestDoc(nil, testRegion("a", 0, 0, 4, 4))
	s := NewStack(100)

	pushMove(s, d, "a", layout.Rect{X: 1, Y: 0, W: 4, H: 4})
	pushResize(s, d, "a", layout.Rect{X: 1, Y: 0, W: 6, H: 4})

	if s.Depth() != 2 {
		t.Errorf("Depth = %d, want 2: move and resize must not merge", s.Depth())
	}
}

func TestNoMergeIntoSavedEntry(t *testing.T) {
	d := newTestDoc(nil, testRegion("a", 0, 0, 10, 4))
	s := NewStack(100)

	pushResize(s, d, "a", layout.Rect{X: 0, Y: 0, W: 20, H: 4})
	s.SetClean()
	pushResize(s, d, "a", layout.Rect{X: 0, Y: 0, W: 30, H: 4})

	if s.Depth() != 2 {
		t.Fatalf("Depth = %d, want 2: merging into the saved entry would fake cleanness", s.Depth())
	}
	if s.IsClean() {
		t.Error("IsClean true after an edit past the saved state")
	}

	s.Undo()
	if !s.IsClean() {
		t.Error("IsClean false after undoing back to the saved state")
	}
}

func TestIdempotentFirstRedoPlainAssignment(t *testing.T) {
	d := newTestDoc(nil, testRegion("a", 0, 0, 4, 4))
	s := NewStack(100)

	// Gesture applies the effect live, then the command is constructed.
	r, _ := d.Get("a")
	old := r.Frame
	to := layout.Rect{X: 3, Y: 3, W: 4, H: 4}
	r.Frame = to
	d.Set("a", r)

	want := d.Snapshot()
	s.Push(NewMoveRegion(d.Handle(), "a", old, to))

	if got := d.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Error("push itself changed document state")
	}

	s.Undo()
	if frameOf(t, d, "a") != old {
		t.Errorf("undo gave %+v, want %+v", frameOf(t, d, "a"), old)
	}
	s.Redo()
	if frameOf(t, d, "a") != to {
		t.Errorf("redo gave %+v, want %+v", frameOf(t, d, "a"), to)
	}
}

func TestIdempotentFirstRedoGuarded(t *testing.T) {
	bus := event.NewBus()
	d := newTestDoc(bus, testRegion("a", 0, 0, 10, 4))

	// Construction applies the insert immediately.
	cmd := NewInsertRegion(d.Handle(), testRegion("n", 6, 0, 4, 4))
	if !d.Has("n") {
		t.Fatal("construction did not apply the insert")
	}
	want := d.Snapshot()

	var notifications int
	bus.Subscribe(layout.TopicChanged, func(any) { notifications++ })

	s := NewStack(100)
	s.Push(cmd)

	if notifications != 0 {
		t.Errorf("push replayed the already-applied insert (%d notifications)", notifications)
	}
	if got := d.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Error("push itself changed document state")
	}

	s.Undo()
	if d.Has("n") {
		t.Fatal("undo did not remove the inserted region")
	}
	s.Redo()
	if got := d.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Error("redo after undo did not restore the inserted state")
	}
}

func TestMacroAtomicity(t *testing.T) {
	d := newTestDoc(nil, testRegion("a", 0, 0, 4, 4), testRegion("b", 5, 0, 4, 4))
	s := NewStack(100)
	before := d.Snapshot()

	s.BeginMacro("Arrange")
	pushMove(s, d, "a", layout.Rect{X: 1, Y: 1, W: 4, H: 4})
	pushMove(s, d, "b", layout.Rect{X: 6, Y: 1, W: 4, H: 4})
	s.EndMacro()

	if s.Depth() != 1 {
		t.Fatalf("Depth = %d, want exactly 1 for the macro", s.Depth())
	}
	if s.UndoLabel() != "Arrange" {
		t.Errorf("UndoLabel = %q, want Arrange", s.UndoLabel())
	}
	after := d.Snapshot()

	s.Undo()
	if got := d.Snapshot(); !reflect.DeepEqual(got, before) {
		t.Error("one undo did not revert both children")
	}
	s.Redo()
	if got := d.Snapshot(); !reflect.DeepEqual(got, after) {
		t.Error("one redo did not replay both children")
	}
}

func TestMacroNesting(t *testing.T) {
	d := newTestDoc(nil, testRegion("a", 0, 0, 4, 4))
	s := NewStack(100)

	s.BeginMacro("outer")
	pushMove(s, d, "a", layout.Rect{X: 1, Y: 0, W: 4, H: 4})
	s.BeginMacro("inner")
	pushMove(s, d, "a", layout.Rect{X: 2, Y: 0, W: 4, H: 4})
	s.EndMacro() // closes inner level only
	if !s.InMacro() {
		t.Fatal("inner EndMacro committed the outer macro")
	}
	pushMove(s, d, "a", layout.Rect{X: 3, Y: 0, W: 4, H: 4})
	s.EndMacro()

	if s.InMacro() {
		t.Fatal("macro still open after outermost EndMacro")
	}
	if s.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", s.Depth())
	}
}

func TestEmptyMacroCommitsNothing(t *testing.T) {
	s := NewStack(100)
	s.BeginMacro("nothing")
	s.EndMacro()

	if s.Depth() != 0 {
		t.Errorf("Depth = %d, want 0 for an empty macro", s.Depth())
	}
}

func TestCancelMacro(t *testing.T) {
	d := newTestDoc(nil, testRegion("a", 0, 0, 4, 4))
	s := NewStack(100)

	s.BeginMacro("abandoned")
	pushMove(s, d, "a", layout.Rect{X: 1, Y: 0, W: 4, H: 4})
	s.CancelMacro()

	if s.InMacro() {
		t.Error("macro still open after cancel")
	}
	if s.Depth() != 0 {
		t.Error("cancelled macro produced a history entry")
	}
	// The executed child's effect remains on the document.
	if frameOf(t, d, "a").X != 1 {
		t.Error("cancel rolled back an already-executed child")
	}
}

func TestUnbalancedEndMacro(t *testing.T) {
	s := NewStack(100)
	s.EndMacro() // must not panic
	if s.Depth() != 0 {
		t.Error("stray EndMacro created an entry")
	}
}

func TestDepthBoundEvictsOldest(t *testing.T) {
	d := newTestDoc(nil,
		testRegion("r0", 0, 0, 2, 2),
		testRegion("r1", 2, 0, 2, 2),
		testRegion("r2", 4, 0, 2, 2),
		testRegion("r3", 6, 0, 2, 2),
		testRegion("r4", 8, 0, 2, 2),
	)
	s := NewStack(3)

	ids := []string{"r0", "r1", "r2", "r3", "r4"}
	for i, id := range ids {
		pushMove(s, d, id, layout.Rect{X: i, Y: 5, W: 2, H: 2})
	}

	if s.Depth() != 3 {
		t.Fatalf("Depth = %d, want 3", s.Depth())
	}

	for s.CanUndo() {
		s.Undo()
	}

	// The two evicted moves stay applied: their effects are beyond undo.
	if frameOf(t, d, "r0").Y != 5 || frameOf(t, d, "r1").Y != 5 {
		t.Error("eviction rolled back effects it should have orphaned")
	}
	// The surviving three were reverted.
	for _, id := range []string{"r2", "r3", "r4"} {
		if frameOf(t, d, id).Y == 5 {
			t.Errorf("%s not reverted by undo", id)
		}
	}
}

func TestDepthBoundEvictionLosesClean(t *testing.T) {
	d := newTestDoc(nil, testRegion("a", 0, 0, 4, 4), testRegion("b", 5, 0, 4, 4))
	s := NewStack(2)

	pushMove(s, d, "a", layout.Rect{X: 1, Y: 0, W: 4, H: 4})
	s.Undo()
	s.SetClean() // clean at position 0, below the pending entry
	s.Redo()

	pushMove(s, d, "b", layout.Rect{X: 6, Y: 0, W: 4, H: 4})
	pushResize(s, d, "b", layout.Rect{X: 6, Y: 0, W: 9, H: 4}) // evicts the first entry

	for s.CanUndo() {
		s.Undo()
	}
	if s.IsClean() {
		t.Error("IsClean true although the clean position was evicted")
	}

	s.SetClean()
	if !s.IsClean() {
		t.Error("SetClean did not re-establish a reachable clean state")
	}
}

func TestCleanStateRoundTrip(t *testing.T) {
	d := newTestDoc(nil, testRegion("a", 0, 0, 4, 4))
	s := NewStack(100)

	pushMove(s, d, "a", layout.Rect{X: 1, Y: 0, W: 4, H: 4})
	pushResize(s, d, "a", layout.Rect{X: 1, Y: 0, W: 6, H: 4})
	s.SetClean()
	if !s.IsClean() {
		t.Fatal("IsClean false immediately after SetClean")
	}

	s.Undo()
	s.Undo()
	if s.IsClean() {
		t.Error("IsClean true away from the saved position")
	}

	s.Redo()
	s.Redo()
	if !s.IsClean() {
		t.Error("IsClean false after returning to the saved position")
	}
}

func TestTruncationLosesCleanInTail(t *testing.T) {
	d := newTestDoc(nil, testRegion("a", 0, 0, 4, 4))
	s := NewStack(100)

	pushMove(s, d, "a", layout.Rect{X: 1, Y: 0, W: 4, H: 4})
	pushResize(s, d, "a", layout.Rect{X: 1, Y: 0, W: 6, H: 4})
	s.SetClean()
	s.Undo()
	pushResize(s, d, "a", layout.Rect{X: 1, Y: 0, W: 9, H: 4}) // truncates the clean entry

	for s.CanRedo() {
		s.Redo()
	}
	if s.IsClean() {
		t.Error("IsClean true although the clean entry was truncated away")
	}
}

func TestBatchDeferralOneNotificationPerTraversal(t *testing.T) {
	bus := event.NewBus()
	d := newTestDoc(bus,
		testRegion("a", 0, 0, 2, 2),
		testRegion("b", 2, 0, 2, 2),
		testRegion("c", 4, 0, 2, 2),
		testRegion("d", 6, 0, 2, 2),
		testRegion("e", 8, 0, 2, 2),
	)
	s := NewStack(100)
	s.Push(NewSetFill(d.Handle(), []string{"a", "b", "c", "d", "e"}, "#00ff00"))

	var count int
	bus.Subscribe(layout.TopicChanged, func(any) { count++ })

	s.Undo()
	if count != 1 {
		t.Errorf("undo of a 5-entity command emitted %d notifications, want 1", count)
	}

	count = 0
	s.Redo()
	if count != 1 {
		t.Errorf("redo of a 5-entity command emitted %d notifications, want 1", count)
	}
}

func TestOperationsAfterDocumentClose(t *testing.T) {
	d := newTestDoc(nil, testRegion("a", 0, 0, 4, 4))
	s := NewStack(100)

	pushMove(s, d, "a", layout.Rect{X: 1, Y: 0, W: 4, H: 4})
	pushResize(s, d, "a", layout.Rect{X: 1, Y: 0, W: 6, H: 4})

	d.Close()

	// Every operation stays total after the document is gone.
	s.Undo()
	s.Undo()
	s.Redo()
	s.Push(NewMoveRegion(d.Handle(), "a", layout.Rect{X: 1, Y: 0, W: 4, H: 4}, layout.Rect{X: 9, Y: 9, W: 4, H: 4}))
	s.Clear()
}

func TestMissingEntityUndoIsNoop(t *testing.T) {
	d := newTestDoc(nil, testRegion("a", 0, 0, 4, 4))
	s := NewStack(100)

	pushMove(s, d, "a", layout.Rect{X: 1, Y: 0, W: 4, H: 4})

	// The target vanishes behind the command's back.
	d.Delete("a")

	s.Undo()
	if d.Has("a") {
		t.Error("undo recreated an entity it should only have updated")
	}
}

func TestClearResetsEverything(t *testing.T) {
	d := newTestDoc(nil, testRegion("a", 0, 0, 4, 4))
	s := NewStack(100)

	pushMove(s, d, "a", layout.Rect{X: 1, Y: 0, W: 4, H: 4})
	s.BeginMacro("open")
	s.Clear()

	if s.Depth() != 0 || s.CanUndo() || s.CanRedo() || s.InMacro() {
		t.Error("Clear left residual state")
	}
	if !s.IsClean() {
		t.Error("empty stack after Clear not clean")
	}
}

func TestSetMaxDepthShrinksHistory(t *testing.T) {
	d := newTestDoc(nil,
		testRegion("a", 0, 0, 2, 2),
		testRegion("b", 2, 0, 2, 2),
		testRegion("c", 4, 0, 2, 2),
	)
	s := NewStack(100)

	pushMove(s, d, "a", layout.Rect{X: 0, Y: 5, W: 2, H: 2})
	pushMove(s, d, "b", layout.Rect{X: 2, Y: 5, W: 2, H: 2})
	pushMove(s, d, "c", layout.Rect{X: 4, Y: 5, W: 2, H: 2})

	s.SetMaxDepth(2)

	if s.Depth() != 2 {
		t.Errorf("Depth = %d, want 2 after shrinking the bound", s.Depth())
	}
	if s.MaxDepth() != 2 {
		t.Errorf("MaxDepth = %d, want 2", s.MaxDepth())
	}
}

func TestStateRepublishing(t *testing.T) {
	bus := event.NewBus()
	d := newTestDoc(nil, testRegion("a", 0, 0, 4, 4))

	var fromBus []State
	bus.Subscribe(TopicState, func(ev any) { fromBus = append(fromBus, ev.(State)) })

	var fromFunc []State
	s := NewStack(100, WithBus(bus), WithStateFunc(func(st State) { fromFunc = append(fromFunc, st) }))

	pushMove(s, d, "a", layout.Rect{X: 1, Y: 0, W: 4, H: 4})
	s.Undo()
	s.Redo()
	s.SetClean()

	if len(fromBus) != 4 || len(fromFunc) != 4 {
		t.Fatalf("republished %d/%d times, want 4/4", len(fromBus), len(fromFunc))
	}

	last := fromFunc[len(fromFunc)-1]
	want := State{
		CanUndo:   true,
		UndoLabel: "Move region",
		Depth:     1,
		MaxDepth:  100,
		Clean:     true,
	}
	if last != want {
		t.Errorf("final state = %+v, want %+v", last, want)
	}
}

func TestPushNilCommand(t *testing.T) {
	s := NewStack(100)
	s.Push(nil)
	if s.Depth() != 0 {
		t.Error("nil push created an entry")
	}
}
