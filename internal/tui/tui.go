// Package tui renders the layout to a terminal with tcell and turns
// key presses into session gestures.
package tui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/mosaicedit/mosaic/internal/config"
)

// TUI manages the terminal screen.
type TUI struct {
	screen tcell.Screen
}

// New creates and initializes the terminal screen.
func New() (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tui: create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("tui: init screen: %w", err)
	}
	s.SetStyle(tcell.StyleDefault)
	return &TUI{screen: s}, nil
}

// Close finalizes the screen. Safe on a nil receiver.
func (t *TUI) Close() {
	if t != nil && t.screen != nil {
		t.screen.Fini()
	}
}

// Screen returns the underlying tcell screen.
func (t *TUI) Screen() tcell.Screen { return t.screen }

// PostReload injects a config-reload event into the event loop. The
// config watcher calls this from its own goroutine; tcell's PostEvent
// is the one safe cross-goroutine entry point into the loop.
func (t *TUI) PostReload(cfg config.Config) {
	_ = t.screen.PostEvent(&ReloadEvent{cfg: cfg, at: time.Now()})
}

// ReloadEvent carries a freshly reloaded configuration into the event
// loop.
type ReloadEvent struct {
	cfg config.Config
	at  time.Time
}

// When returns the time the reload was posted.
func (e *ReloadEvent) When() time.Time { return e.at }

// Config returns the reloaded configuration.
func (e *ReloadEvent) Config() config.Config { return e.cfg }
