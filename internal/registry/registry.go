// Package registry holds the terminal backends the game can run on.
// Backends register themselves in init() functions, so the CLI can list and
// pick them by name without importing each implementation directly.
package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/render"
)

// Backend is a terminal surface plus its keyboard.
// It is used by exactly one game session.
type Backend interface {
	// Start acquires the terminal (raw mode, alternate screen, hidden cursor)
	// and begins decoding input in the background.
	Start() error

	// Painter returns the surface frames are painted on. Valid after Start.
	Painter() render.Painter

	// Events delivers decoded player actions. The channel is closed when
	// input ends (EOF, disconnect) or after Close.
	Events() <-chan core.Action

	// Size returns the terminal size in cells, or 0, 0 when unknown.
	Size() (cols, rows int)

	// Close restores the terminal. Every restoration step runs even if an
	// earlier one fails; the errors are joined.
	Close() error
}

// Options carries what a backend needs from its caller.
type Options struct {
	In     io.Reader // keyboard input; nil means os.Stdin
	Out    io.Writer // screen output; nil means os.Stdout
	Term   string    // terminal type for key decoding; empty means $TERM
	Cols   int       // known size for non-tty writers such as SSH sessions
	Rows   int
	Colors map[string]string // glyph -> colour
	Logger *log.Logger
}

// BackendInfo describes a registered backend.
type BackendInfo struct {
	Name        string
	Description string
}

// Factory creates a backend that has not been started yet.
type Factory func(opts Options) Backend

type entry struct {
	description string
	factory     Factory
}

var (
	backends = make(map[string]entry)
	mu       sync.RWMutex
)

// Register adds a backend factory. Panics if the name is already taken.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := backends[name]; exists {
		panic(fmt.Sprintf("registry: backend %q already registered", name))
	}
	backends[name] = entry{description: description, factory: f}
}

// List returns all registered backends, sorted by name.
func List() []BackendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BackendInfo, 0, len(backends))
	for name, e := range backends {
		result = append(result, BackendInfo{Name: name, Description: e.description})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Create instantiates a backend by name.
func Create(name string, opts Options) (Backend, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown backend %q", name)
	}
	return e.factory(opts), nil
}

// Exists checks if a backend with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := backends[name]
	return ok
}
