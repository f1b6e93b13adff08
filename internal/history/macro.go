package history

import "fmt"

// MacroCommand groups child commands into one undo/redo unit. Undo
// reverts the children in reverse order; Redo replays them in forward
// order. Macros never merge.
type MacroCommand struct {
	label    string
	children []Command
}

func newMacro(label string) *MacroCommand {
	return &MacroCommand{label: label}
}

func (m *MacroCommand) add(cmd Command) {
	m.children = append(m.children, cmd)
}

// Len returns the number of child commands.
func (m *MacroCommand) Len() int { return len(m.children) }

// Redo replays all children in forward order.
func (m *MacroCommand) Redo() {
	for _, c := range m.children {
		c.Redo()
	}
}

// Undo reverts all children in reverse order.
func (m *MacroCommand) Undo() {
	for i := len(m.children) - 1; i >= 0; i-- {
		m.children[i].Undo()
	}
}

// Label returns the macro's name, falling back to a child count.
func (m *MacroCommand) Label() string {
	if m.label != "" {
		return m.label
	}
	if len(m.children) == 1 {
		return m.children[0].Label()
	}
	return fmt.Sprintf("%d edits", len(m.children))
}

// MergeTag always reports MergeNone for macros.
func (m *MacroCommand) MergeTag() MergeTag { return MergeNone }

// macroFrame tracks an in-progress macro and its nesting depth. Only
// the outermost EndMacro commits.
type macroFrame struct {
	cmd   *MacroCommand
	depth int
}
