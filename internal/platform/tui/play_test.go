package tui

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/audio"
	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/game"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/render"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

const scriptedBackend = "scripted"

// nextBackend is handed out by the scripted factory; tests set it before Play.
var nextBackend *scriptedTerminal

func init() {
	registry.Register(scriptedBackend, "in-memory terminal for tests",
		func(registry.Options) registry.Backend { return nextBackend })
}

// teardownLog records calls from the logic and render goroutines in order.
type teardownLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *teardownLog) add(e string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

func (l *teardownLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

type scriptedTerminal struct {
	log        *teardownLog
	events     chan core.Action
	cols, rows int
	firstFlush chan struct{}
	flushOnce  sync.Once
	closes     int
}

func newScriptedTerminal(log *teardownLog, cols, rows int) *scriptedTerminal {
	return &scriptedTerminal{
		log:        log,
		events:     make(chan core.Action, 1),
		cols:       cols,
		rows:       rows,
		firstFlush: make(chan struct{}),
	}
}

func (s *scriptedTerminal) Start() error { return nil }
func (s *scriptedTerminal) Painter() render.Painter { return s }
func (s *scriptedTerminal) Events() <-chan core.Action { return s.events }
func (s *scriptedTerminal) Size() (int, int) { return s.cols, s.rows }
func (s *scriptedTerminal) Clear() error { return nil }
func (s *scriptedTerminal) Put(x, y int, glyph string) {}

func (s *scriptedTerminal) Flush() error {
	s.log.add("flush")
	s.flushOnce.Do(func() { close(s.firstFlush) })
	return nil
}

func (s *scriptedTerminal) Close() error {
	s.closes++
	s.log.add("close")
	return nil
}

type scriptedCues struct {
	log     *teardownLog
	panicOn audio.Cue
}

func (c *scriptedCues) Play(cue audio.Cue) {
	if cue == c.panicOn {
		panic("audio device fault")
	}
}

func (c *scriptedCues) Wait() { c.log.add("wait") }

func testPlayConfig(t *testing.T, cues audio.Sink) (PlayConfig, *storage.Store) {
	t.Helper()
	cfg := config.DefaultInvadersConfig()
	cfg.Render.TickSleepMS = 0
	store := openTestStore(t)
	return PlayConfig{
		Backend: scriptedBackend,
		Config:  cfg,
		Cues:    cues,
		Store:   store,
		Player:  "tester",
	}, store
}

// checkTeardown verifies that every flush happened before the cues were
// waited on, and that the terminal was closed exactly once, last.
func checkTeardown(t *testing.T, term *scriptedTerminal, log *teardownLog) {
	t.Helper()
	if term.closes != 1 {
		t.Errorf("backend closed %d times, expected 1", term.closes)
	}
	entries := log.snapshot()
	if len(entries) < 2 || entries[len(entries)-1] != "close" || entries[len(entries)-2] != "wait" {
		t.Fatalf("teardown should end with wait, close; got %v", entries)
	}
	for _, e := range entries[:len(entries)-2] {
		if e != "flush" {
			t.Errorf("unexpected %q before teardown: %v", e, entries)
		}
	}
}

func countResults(t *testing.T, store *storage.Store) []storage.Result {
	t.Helper()
	results, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults() error: %v", err)
	}
	return results
}

func TestPlayClosedInputIsRecorded(t *testing.T) {
	log := &teardownLog{}
	term := newScriptedTerminal(log, 80, 24)
	nextBackend = term
	close(term.events)

	pc, store := testPlayConfig(t, &scriptedCues{log: log})
	res, err := Play(context.Background(), pc)
	if err != nil {
		t.Fatalf("Play() error: %v", err)
	}
	if res.State != game.LostExit {
		t.Errorf("state = %v, expected Lost", res.State)
	}
	if res.Ticks != 1 {
		t.Errorf("ticks = %d, expected 1", res.Ticks)
	}

	checkTeardown(t, term, log)
	if got := log.snapshot(); got[0] != "flush" {
		t.Errorf("the accepted frame should be painted before teardown: %v", got)
	}

	results := countResults(t, store)
	if len(results) != 1 {
		t.Fatalf("expected 1 recorded result, got %d", len(results))
	}
	if results[0].Won() || results[0].Backend != scriptedBackend || results[0].Player != "tester" {
		t.Errorf("unexpected record %+v", results[0])
	}
}

func TestPlayQuitAfterFirstFrame(t *testing.T) {
	log := &teardownLog{}
	term := newScriptedTerminal(log, 80, 24)
	nextBackend = term
	go func() {
		<-term.firstFlush
		term.events <- core.ActionQuit
	}()

	pc, store := testPlayConfig(t, &scriptedCues{log: log})
	res, err := Play(context.Background(), pc)
	if err != nil {
		t.Fatalf("Play() error: %v", err)
	}
	if res.State != game.LostExit {
		t.Errorf("state = %v, expected Lost", res.State)
	}

	checkTeardown(t, term, log)
	if n := len(countResults(t, store)); n != 1 {
		t.Errorf("expected 1 recorded result, got %d", n)
	}
}

func TestPlayCancelledIsNotRecorded(t *testing.T) {
	log := &teardownLog{}
	term := newScriptedTerminal(log, 80, 24)
	nextBackend = term

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pc, store := testPlayConfig(t, &scriptedCues{log: log})
	res, err := Play(ctx, pc)
	if err != nil {
		t.Fatalf("a cancelled game is not an error, got %v", err)
	}
	if res.Ticks != 0 {
		t.Errorf("ticks = %d, expected 0", res.Ticks)
	}

	checkTeardown(t, term, log)
	if n := len(countResults(t, store)); n != 0 {
		t.Errorf("cancelled game should not be recorded, got %d results", n)
	}
}

func TestPlayTerminalTooSmall(t *testing.T) {
	log := &teardownLog{}
	term := newScriptedTerminal(log, 20, 10)
	nextBackend = term

	pc, store := testPlayConfig(t, &scriptedCues{log: log})
	_, err := Play(context.Background(), pc)
	if err == nil || !strings.Contains(err.Error(), "20x10") {
		t.Fatalf("expected a terminal size error, got %v", err)
	}

	checkTeardown(t, term, log)
	if got := log.snapshot(); len(got) != 2 {
		t.Errorf("nothing should be painted, got %v", got)
	}
	if n := len(countResults(t, store)); n != 0 {
		t.Errorf("expected no recorded result, got %d", n)
	}
}

func TestPlayRestoresTerminalOnPanic(t *testing.T) {
	log := &teardownLog{}
	term := newScriptedTerminal(log, 80, 24)
	nextBackend = term

	pc, store := testPlayConfig(t, &scriptedCues{log: log, panicOn: audio.CueStartup})

	recovered := func() (r any) {
		defer func() { r = recover() }()
		_, _ = Play(context.Background(), pc)
		return nil
	}()
	if recovered == nil {
		t.Fatal("expected the cue panic to propagate")
	}

	checkTeardown(t, term, log)
	if n := len(countResults(t, store)); n != 0 {
		t.Errorf("expected no recorded result, got %d", n)
	}
}

func TestPlayUnknownBackend(t *testing.T) {
	log := &teardownLog{}
	pc, _ := testPlayConfig(t, &scriptedCues{log: log})
	pc.Backend = "missing"

	if _, err := Play(context.Background(), pc); err == nil {
		t.Fatal("expected an error for an unknown backend")
	}
	if got := log.snapshot(); len(got) != 1 || got[0] != "wait" {
		t.Errorf("cues should still be waited on, got %v", got)
	}
}
