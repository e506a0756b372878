package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophnotes/internal/config"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfig(t *testing.T) {
	origTerm, origPrint := isTerminal, printlnFn
	isTerminal = func(int) bool { return false }
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() {
		isTerminal = origTerm
		printlnFn = origPrint
	})

	dir := t.TempDir()
	cfg := &config.Config{
		StorePath:    filepath.Join(dir, "state", "users.store"),
		StoreSecret:  "store-secret",
		DocumentsDir: filepath.Join(dir, "notes"),
		LogLevel:     "info",
	}

	var out bytes.Buffer
	in := strings.NewReader("ana\npassword-1\npassword-1\nwrite a.txt\nhello\n.\nexit\n")
	app, sessions, err := NewFromConfig(cfg, testParams, in, &out, nil)
	require.NoError(t, err)
	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, 0, sessions.Len())
	assert.FileExists(t, cfg.StorePath)
	assert.FileExists(t, filepath.Join(cfg.DocumentsDir, "a.txt"))

	info, err := os.Stat(cfg.DocumentsDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewFromConfig_BadDocumentsDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	cfg := &config.Config{
		StorePath:    filepath.Join(dir, "users.store"),
		StoreSecret:  "s",
		DocumentsDir: blocker,
	}
	_, _, err := NewFromConfig(cfg, testParams, strings.NewReader(""), &bytes.Buffer{}, nil)
	assert.Error(t, err)
}

func TestNewFromConfig_LogsStoreLocation(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		StorePath:    filepath.Join(dir, "users.store"),
		StoreSecret:  "store-secret",
		DocumentsDir: filepath.Join(dir, "notes"),
	}

	var logs bytes.Buffer
	log, err := logging.New("info", &logs)
	require.NoError(t, err)

	_, _, err = NewFromConfig(cfg, testParams, strings.NewReader(""), &bytes.Buffer{}, log)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "credential store")
	assert.Contains(t, logs.String(), cfg.StorePath)
}
