package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/mosaicedit/mosaic/internal/config"
	"github.com/mosaicedit/mosaic/internal/layout"
	"github.com/mosaicedit/mosaic/internal/logger"
	"github.com/mosaicedit/mosaic/internal/session"
)

// App drives the interactive editor: one session, one screen, one
// event loop.
type App struct {
	sess   *session.Session
	screen tcell.Screen

	palette    []string
	paletteIdx int
	selected   string
}

// NewApp binds a session to a screen. The palette colors the fill
// cycle and newly inserted regions.
func NewApp(sess *session.Session, screen tcell.Screen, cfg config.Config) *App {
	return &App{
		sess:    sess,
		screen:  screen,
		palette: cfg.UI.Palette,
	}
}

// Run blocks on the event loop until the user quits.
func (a *App) Run() error {
	a.render()
	for {
		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *ReloadEvent:
			a.applyConfig(ev.Config())
		case *tcell.EventKey:
			if a.handleKey(ev) {
				return nil
			}
		case nil:
			return nil
		}
		a.render()
	}
}

// applyConfig applies the live-reloadable settings.
func (a *App) applyConfig(cfg config.Config) {
	a.sess.SetMaxDepth(cfg.History.MaxDepth)
	if lvl, err := logger.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(lvl)
	}
	a.palette = cfg.UI.Palette
	if a.paletteIdx >= len(a.palette) {
		a.paletteIdx = 0
	}
}

// handleKey maps one key press to a gesture. Returns true to quit.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	shift := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyCtrlS:
		a.sess.SetClean()
		return false
	case tcell.KeyCtrlR:
		a.sess.Redo()
		return false
	case tcell.KeyTab:
		a.cycleSelection()
		return false
	case tcell.KeyUp:
		a.nudge(0, -1, shift)
		return false
	case tcell.KeyDown:
		a.nudge(0, 1, shift)
		return false
	case tcell.KeyLeft:
		a.nudge(-1, 0, shift)
		return false
	case tcell.KeyRight:
		a.nudge(1, 0, shift)
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'u':
		a.sess.Undo()
	case 'f':
		a.cycleFill()
	case 'r':
		a.withSelected(a.sess.Raise)
	case 'l':
		a.withSelected(a.sess.Lower)
	case 'i':
		a.insert()
	case 's':
		a.split(true)
	case 'S':
		a.split(false)
	case 'x':
		a.withSelected(a.sess.Delete)
		a.selected = ""
	case 'C':
		a.sess.ClearAll()
		a.selected = ""
	}
	return false
}

// nudge moves the selected region, or resizes it with shift held.
func (a *App) nudge(dx, dy int, resize bool) {
	r, ok := a.selectedRegion()
	if !ok {
		return
	}
	if resize {
		a.sess.Resize(r.ID, r.Frame.Grow(dx, dy))
		return
	}
	a.sess.Move(r.ID, r.Frame.Translate(dx, dy))
}

func (a *App) cycleFill() {
	r, ok := a.selectedRegion()
	if !ok || len(a.palette) == 0 {
		return
	}
	a.paletteIdx = (a.paletteIdx + 1) % len(a.palette)
	a.sess.Fill([]string{r.ID}, a.palette[a.paletteIdx])
}

func (a *App) insert() {
	frame := layout.Rect{X: 2, Y: 2, W: 12, H: 5}
	if r, ok := a.selectedRegion(); ok {
		frame = r.Frame.Translate(2, 1)
	}
	fill := "#7aa2f7"
	if len(a.palette) > 0 {
		fill = a.palette[a.paletteIdx]
	}
	id := a.sess.Insert(layout.Region{Frame: frame, Fill: fill})
	if id != "" {
		a.sess.Select([]string{id})
		a.selected = id
	}
}

func (a *App) split(vertical bool) {
	r, ok := a.selectedRegion()
	if !ok {
		return
	}
	if id := a.sess.Split(r.ID, vertical); id != "" {
		a.sess.Select([]string{id})
		a.selected = id
	}
}

// cycleSelection advances to the next region in id order.
func (a *App) cycleSelection() {
	regions := a.sess.Document().Snapshot()
	if len(regions) == 0 {
		a.selected = ""
		return
	}
	next := regions[0].ID
	for i, r := range regions {
		if r.ID == a.selected && i+1 < len(regions) {
			next = regions[i+1].ID
			break
		}
	}
	a.selected = next
	a.sess.Select([]string{next})
}

func (a *App) withSelected(fn func(id string)) {
	if r, ok := a.selectedRegion(); ok {
		fn(r.ID)
	}
}

func (a *App) selectedRegion() (layout.Region, bool) {
	if a.selected == "" {
		return layout.Region{}, false
	}
	r, ok := a.sess.Document().Get(a.selected)
	if !ok {
		a.selected = ""
	}
	return r, ok
}

func (a *App) render() {
	Render(a.screen, a.sess.Document(), a.sess.State())
}
