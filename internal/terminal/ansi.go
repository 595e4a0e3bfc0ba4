package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/input"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/render"
)

func init() {
	registry.Register("ansi", "raw escape sequences on any terminal or SSH session (default)",
		func(opts registry.Options) registry.Backend { return NewANSI(opts) })
}

// eventBuffer is the capacity of the action channel. Keys beyond it block
// the decoder, never the game.
const eventBuffer = 32

// ANSI drives a terminal through escape sequences written to an io.Writer
// and decodes keys from an io.Reader.
type ANSI struct {
	in     io.Reader
	out    io.Writer
	termTy string
	cols   int
	rows   int
	logger *log.Logger

	painter *render.ANSIPainter
	keys    *KeyMapper
	reader  *input.Reader
	events  chan core.Action
	quit    chan struct{}

	rawState *term.State
	rawFd    int

	closeOnce sync.Once
	closeErr  error
}

// NewANSI creates an ANSI backend. Nil streams default to stdin and stdout.
func NewANSI(opts registry.Options) *ANSI {
	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	termTy := opts.Term
	if termTy == "" {
		termTy = os.Getenv("TERM")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	colors := opts.Colors
	if colors == nil {
		colors = render.DefaultColors
	}

	return &ANSI{
		in:      in,
		out:     out,
		termTy:  termTy,
		cols:    opts.Cols,
		rows:    opts.Rows,
		logger:  logger,
		painter: render.NewANSIPainter(out, colors),
		keys:    NewKeyMapper(),
		events:  make(chan core.Action, eventBuffer),
		quit:    make(chan struct{}),
	}
}

// Start switches a tty input to raw mode, enters the alternate screen and
// starts the key decoder. Non-tty input (SSH sessions, tests) is used as is.
func (a *ANSI) Start() error {
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("terminal: raw mode: %w", err)
		}
		a.rawState, a.rawFd = state, fd
	}

	if f, ok := a.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil {
			a.cols, a.rows = w, h
		}
	}

	reader, err := input.NewReader(a.in, a.termTy, 0)
	if err != nil {
		_ = a.restoreMode()
		return fmt.Errorf("terminal: input reader: %w", err)
	}
	a.reader = reader

	if _, err := io.WriteString(a.out, ansi.SetAltScreenSaveCursorMode+ansi.HideCursor+ansi.EraseEntireScreen); err != nil {
		_ = reader.Close()
		_ = a.restoreMode()
		return fmt.Errorf("terminal: enter alternate screen: %w", err)
	}

	go a.readLoop()
	return nil
}

func (a *ANSI) readLoop() {
	defer close(a.events)

	for {
		evs, err := a.reader.ReadEvents()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				a.logger.Debug("input stopped", "error", err)
			}
			return
		}
		for _, ev := range evs {
			kp, ok := ev.(input.KeyPressEvent)
			if !ok {
				continue
			}
			action := a.keys.MapKey(kp.String())
			if action == core.ActionNone {
				continue
			}
			select {
			case a.events <- action:
			case <-a.quit:
				return
			}
		}
	}
}

// Painter returns the escape-sequence painter on the output stream.
func (a *ANSI) Painter() render.Painter { return a.painter }

// Events delivers decoded actions; it is closed when input ends.
func (a *ANSI) Events() <-chan core.Action { return a.events }

// Size returns the terminal size, or 0x0 when it is unknown.
func (a *ANSI) Size() (int, int) { return a.cols, a.rows }

// Close stops the decoder, shows the cursor, leaves the alternate screen and
// restores the original terminal mode.
func (a *ANSI) Close() error {
	a.closeOnce.Do(func() {
		close(a.quit)

		var errs []error
		if a.reader != nil {
			a.reader.Cancel()
			if err := a.reader.Close(); err != nil {
				errs = append(errs, fmt.Errorf("terminal: close input: %w", err))
			}
		}
		if _, err := io.WriteString(a.out, ansi.ResetStyle+ansi.ShowCursor+ansi.ResetAltScreenSaveCursorMode); err != nil {
			errs = append(errs, fmt.Errorf("terminal: leave alternate screen: %w", err))
		}
		if err := a.restoreMode(); err != nil {
			errs = append(errs, err)
		}
		a.closeErr = errors.Join(errs...)
	})
	return a.closeErr
}

func (a *ANSI) restoreMode() error {
	if a.rawState == nil {
		return nil
	}
	state := a.rawState
	a.rawState = nil
	if err := term.Restore(a.rawFd, state); err != nil {
		return fmt.Errorf("terminal: restore mode: %w", err)
	}
	return nil
}
