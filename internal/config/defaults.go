package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultInvadersConfig returns the default game configuration.
func DefaultInvadersConfig() InvadersConfig {
	field := core.DefaultConfig()
	return InvadersConfig{
		Field: FieldConfig{
			Cols: field.Cols,
			Rows: field.Rows,
		},
		Render: RenderConfig{
			QueueSize:   2,
			TickSleepMS: 1,
			Colors: map[string]string{
				"A": "10",
				"x": "13",
				"+": "5",
				"|": "11",
				"*": "208",
			},
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Log: LogConfig{
			File:  "",
			Level: "info",
		},
		Storage: StorageConfig{
			DBPath: "~/.invaders/results.db",
		},
	}
}
