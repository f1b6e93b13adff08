package history

// MergeTag classifies commands for coalescing. Two consecutive pushes
// merge only when their tags match, the tag is not MergeNone, and the
// surviving command's own predicate (typically same target) accepts the
// newcomer.
type MergeTag int

const (
	// MergeNone marks commands that never coalesce.
	MergeNone MergeTag = iota
	MergeMove
	MergeResize
	MergeFill
	MergeParam
	MergeSelection
	MergeGap
	MergePadding
)

// Merger is implemented by commands that can absorb a newer command of
// the same tag. Merge returns true when the incoming command has been
// folded in; the incoming command is then discarded and its Redo never
// runs, so implementations must leave the document reflecting the
// merged new state themselves.
type Merger interface {
	Merge(incoming Command) bool
}
