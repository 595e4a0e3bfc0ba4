package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/render"
)

func init() {
	registry.Register("tcell", "tcell screen on the local terminal",
		func(opts registry.Options) registry.Backend { return NewTcell(nil, opts.Colors) })
}

// Tcell runs the game on a tcell screen.
type Tcell struct {
	screen  tcell.Screen
	colors  map[string]string
	painter *render.TcellPainter
	keys    *KeyMapper
	events  chan core.Action
	quit    chan struct{}

	closeOnce sync.Once
}

// NewTcell creates a tcell backend. A nil screen means the local terminal.
func NewTcell(screen tcell.Screen, colors map[string]string) *Tcell {
	if colors == nil {
		colors = render.DefaultColors
	}
	return &Tcell{
		screen: screen,
		colors: colors,
		keys:   NewKeyMapper(),
		events: make(chan core.Action, eventBuffer),
		quit:   make(chan struct{}),
	}
}

// Start initialises the screen and starts polling for keys.
func (t *Tcell) Start() error {
	if t.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: tcell screen: %w", err)
		}
		t.screen = s
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("terminal: tcell init: %w", err)
	}
	t.screen.HideCursor()
	t.screen.Clear()
	t.painter = render.NewTcellPainter(t.screen, t.colors)

	go t.pollLoop()
	return nil
}

func (t *Tcell) pollLoop() {
	defer close(t.events)

	for {
		// PollEvent returns nil once the screen is finalised
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		action := t.keys.MapKey(tcellKeyName(key))
		if action == core.ActionNone {
			continue
		}
		select {
		case t.events <- action:
		case <-t.quit:
			return
		}
	}
}

// tcellKeyName converts a tcell key event to the shared key naming.
func tcellKeyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyCtrlC:
		return "ctrl+c"
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return "space"
		}
		return string(ev.Rune())
	}
	return ""
}

// Painter returns the painter bound to the screen once Start has run.
func (t *Tcell) Painter() render.Painter { return t.painter }

// Events delivers mapped key actions; it is closed after Close.
func (t *Tcell) Events() <-chan core.Action { return t.events }

// Size returns the screen size, or 0x0 before Start.
func (t *Tcell) Size() (int, int) {
	if t.screen == nil {
		return 0, 0
	}
	return t.screen.Size()
}

// Close finalises the screen, which also restores the terminal mode.
func (t *Tcell) Close() error {
	t.closeOnce.Do(func() {
		close(t.quit)
		if t.screen != nil {
			t.screen.Fini()
		}
	})
	return nil
}
