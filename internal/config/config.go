// Package config provides YAML-based configuration loading for the game:
// field size, render and audio settings, logging and the result database.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// InvadersConfig contains all configuration for a game session.
// Formation timing is fixed by the game and not configurable.
type InvadersConfig struct {
	Field   FieldConfig   `yaml:"field"`
	Render  RenderConfig  `yaml:"render"`
	Audio   AudioConfig   `yaml:"audio"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
}

// FieldConfig defines the playfield size in terminal cells.
type FieldConfig struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// Runtime returns the field geometry a session runs with.
func (f FieldConfig) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{Cols: f.Cols, Rows: f.Rows}
}

// RenderConfig tunes the render pipeline.
type RenderConfig struct {
	QueueSize   int               `yaml:"queue_size"`    // frames buffered between logic and render
	TickSleepMS int               `yaml:"tick_sleep_ms"` // pause at the end of each logic tick
	Colors      map[string]string `yaml:"colors"`        // glyph -> ANSI 256 index or colour name
}

// AudioConfig controls sound cues.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 .. 1.0
}

// LogConfig controls the diagnostic log. Local play owns the terminal,
// so an empty File discards log output there.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// StorageConfig locates the result database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// Minimum playfield size. The formation needs room to spawn and descend.
const (
	MinCols = 8
	MinRows = 12
)

// TickSleep returns the per-tick pause as a duration.
func (c RenderConfig) TickSleep() time.Duration {
	return time.Duration(c.TickSleepMS) * time.Millisecond
}

// Validate checks that the configuration can run a game.
func (c InvadersConfig) Validate() error {
	var errs []error
	if c.Field.Cols < MinCols {
		errs = append(errs, fmt.Errorf("field.cols must be at least %d, got %d", MinCols, c.Field.Cols))
	}
	if c.Field.Rows < MinRows {
		errs = append(errs, fmt.Errorf("field.rows must be at least %d, got %d", MinRows, c.Field.Rows))
	}
	if c.Render.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("render.queue_size must be at least 1, got %d", c.Render.QueueSize))
	}
	if c.Render.TickSleepMS < 0 {
		errs = append(errs, fmt.Errorf("render.tick_sleep_ms must not be negative, got %d", c.Render.TickSleepMS))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be within [0, 1], got %g", c.Audio.Volume))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
