package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name:     "all flags",
			args:     []string{"-s", "/tmp/u.store", "-d", "/tmp/notes", "-l", "debug"},
			expected: &Config{StorePath: "/tmp/u.store", StoreSecret: "s", DocumentsDir: "/tmp/notes", LogLevel: "debug"},
		},
		{
			name:     "other flags ignored",
			args:     []string{"-c", "cfg.json", "-x", "-l=warn"},
			expected: &Config{StorePath: "default.store", StoreSecret: "s", DocumentsDir: ".", LogLevel: "warn"},
		},
		{
			name:        "missing value",
			args:        []string{"-s"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{StorePath: "default.store", StoreSecret: "s", DocumentsDir: ".", LogLevel: "info"}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
