// Package history provides the transactional undo/redo engine behind
// the layout editor.
//
// The engine uses the command pattern: every edit is a Command holding
// the captured state needed to undo and redo it. Commands are pushed
// onto a Stack, which owns the ordered history, the cursor separating
// undone from redone entries, the clean (saved) marker and the depth
// bound.
//
// # Pushing
//
// A command is constructed at gesture-commit time, after its effect has
// already been applied to the document for live feedback. Push runs the
// command's first Redo, which therefore must not double-apply: plain
// assignments are simply reasserted, while whole-collection commands
// carry a one-shot guard that swallows the first call.
//
// # Merging
//
// Consecutive commands with the same merge tag and target coalesce into
// one history entry, so an interactive drag produces a single undo step
// instead of dozens. The surviving entry keeps its original old state
// and adopts the incoming new state.
//
// # Macros
//
//	stack.BeginMacro("Distribute regions")
//	// ... several pushes ...
//	stack.EndMacro()
//
// Everything pushed between the outermost BeginMacro and EndMacro
// becomes one composite entry that undoes and redoes atomically.
// Nested BeginMacro calls only bump a depth counter.
//
// # Robustness
//
// Every operation is total. A command whose document handle no longer
// resolves, whose target entity has vanished, or whose captured payload
// is incomplete logs a warning and does nothing; an undo stack that
// could fail mid-traversal would corrupt the cursor for every later
// operation.
package history
