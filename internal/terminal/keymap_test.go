package terminal

import (
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key  string
		want core.Action
	}{
		{"left", core.ActionLeft},
		{"a", core.ActionLeft},
		{"h", core.ActionLeft},
		{"right", core.ActionRight},
		{"d", core.ActionRight},
		{"l", core.ActionRight},
		{"space", core.ActionFire},
		{"enter", core.ActionFire},
		{"esc", core.ActionQuit},
		{"q", core.ActionQuit},
		{"ctrl+c", core.ActionQuit},
		{"up", core.ActionNone},
		{"x", core.ActionNone},
		{"", core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if got := km.MapKey(tc.key); got != tc.want {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.key, got, tc.want)
			}
		})
	}
}
