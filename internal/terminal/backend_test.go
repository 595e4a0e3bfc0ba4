package terminal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// collect reads n actions or fails after a timeout.
func collect(t *testing.T, events <-chan core.Action, n int) []core.Action {
	t.Helper()

	var got []core.Action
	timeout := time.After(2 * time.Second)
	for len(got) < n {
		select {
		case a, ok := <-events:
			if !ok {
				t.Fatalf("events closed after %d actions, expected %d", len(got), n)
			}
			got = append(got, a)
		case <-timeout:
			t.Fatalf("timed out after %d actions, expected %d", len(got), n)
		}
	}
	return got
}

func waitClosed(t *testing.T, events <-chan core.Action) {
	t.Helper()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("events channel was not closed")
		}
	}
}

func TestANSIBackend(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("\x1b[D" + "d" + "x" + " " + "q")

	b := NewANSI(registry.Options{In: in, Out: &out, Term: "xterm", Cols: 40, Rows: 20})
	if err := b.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	got := collect(t, b.Events(), 4)
	want := []core.Action{core.ActionLeft, core.ActionRight, core.ActionFire, core.ActionQuit}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("action %d = %v, expected %v", i, got[i], want[i])
		}
	}

	// EOF on input ends the stream
	waitClosed(t, b.Events())

	if c, r := b.Size(); c != 40 || r != 20 {
		t.Errorf("Size() = %d, %d; expected 40, 20", c, r)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	s := out.String()
	if !strings.HasPrefix(s, ansi.SetAltScreenSaveCursorMode+ansi.HideCursor) {
		t.Errorf("output does not start by entering the alternate screen: %q", s)
	}
	if !strings.HasSuffix(s, ansi.ShowCursor+ansi.ResetAltScreenSaveCursorMode) {
		t.Errorf("output does not end by restoring the screen: %q", s)
	}
}

func TestTcellBackend(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	b := NewTcell(screen, nil)
	if err := b.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	screen.SetSize(40, 20)

	screen.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'z', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	got := collect(t, b.Events(), 3)
	want := []core.Action{core.ActionLeft, core.ActionFire, core.ActionQuit}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("action %d = %v, expected %v", i, got[i], want[i])
		}
	}

	if c, r := b.Size(); c != 40 || r != 20 {
		t.Errorf("Size() = %d, %d; expected 40, 20", c, r)
	}
	if b.Painter() == nil {
		t.Error("Painter() is nil after Start")
	}

	if err := b.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	waitClosed(t, b.Events())
}

func TestTcellKeyName(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "left"},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), "right"},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "enter"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "esc"},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "ctrl+c"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "space"},
		{tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), "h"},
		{tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), ""},
	}

	for _, tc := range tests {
		if got := tcellKeyName(tc.ev); got != tc.want {
			t.Errorf("tcellKeyName(%v) = %q, expected %q", tc.ev.Name(), got, tc.want)
		}
	}
}

func TestBackendsRegistered(t *testing.T) {
	for _, name := range []string{"ansi", "tcell"} {
		if !registry.Exists(name) {
			t.Errorf("backend %q is not registered", name)
		}
	}
}
