package tui

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/mosaicedit/mosaic/internal/history"
	"github.com/mosaicedit/mosaic/internal/layout"
)

// selectionHighlight lightens a selected region's fill so selection
// reads without a border.
const selectionHighlight = "#ffffff"

// Render draws the document and a one-line status bar, bottom row of
// the screen. Regions paint in ascending z-order so higher regions
// cover lower ones.
func Render(screen tcell.Screen, doc *layout.Document, st history.State) {
	screen.Clear()
	width, height := screen.Size()
	canvasH := height - 1
	if canvasH < 0 {
		canvasH = 0
	}

	regions := doc.Snapshot()
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].ZIndex < regions[j].ZIndex
	})

	selected := make(map[string]bool)
	for _, id := range doc.Selection() {
		selected[id] = true
	}

	for _, r := range regions {
		drawRegion(screen, r, selected[r.ID], width, canvasH)
	}
	drawStatus(screen, st, len(regions), width, height-1)
	screen.Show()
}

func drawRegion(screen tcell.Screen, r layout.Region, selected bool, maxW, maxH int) {
	fill := r.Fill
	if selected {
		fill = layout.BlendColors(r.Fill, selectionHighlight, 0.35)
	}
	style := tcell.StyleDefault.Background(tcell.GetColor(fill))

	frame := r.Frame.Intersect(layout.Rect{W: maxW, H: maxH})
	if frame.IsEmpty() {
		return
	}
	for y := frame.Y; y < frame.Bottom(); y++ {
		for x := frame.X; x < frame.Right(); x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}

	// Name label on the top row, clipped to the frame.
	label := r.Name
	if label == "" {
		label = r.ID
	}
	fg := tcell.GetColor(layout.BlendColors(fill, "#000000", 0.7))
	text := style.Foreground(fg)
	for i, ch := range label {
		x := frame.X + 1 + i
		if x >= frame.Right()-1 {
			break
		}
		screen.SetContent(x, frame.Y, ch, nil, text)
	}
}

func drawStatus(screen tcell.Screen, st history.State, regions, width, row int) {
	if row < 0 {
		return
	}

	saved := "saved"
	if !st.Clean {
		saved = "modified"
	}
	line := fmt.Sprintf(" %d regions | %d/%d steps | %s", regions, st.Depth, st.MaxDepth, saved)
	if st.CanUndo {
		line += fmt.Sprintf(" | undo: %s", st.UndoLabel)
	}
	if st.CanRedo {
		line += fmt.Sprintf(" | redo: %s", st.RedoLabel)
	}

	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < width; x++ {
		ch := ' '
		if x < len(line) {
			ch = rune(line[x])
		}
		screen.SetContent(x, row, ch, nil, style)
	}
}
