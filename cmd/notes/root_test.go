package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notes"
	"github.com/aretw0/notes/pkg/adapters/memory"
	"github.com/aretw0/notes/pkg/core"
)

// closingStorage records whether the service closed it.
type closingStorage struct {
	*memory.Storage
	closed int
}

func (s *closingStorage) Close() error {
	s.closed++
	return nil
}

// execute runs the CLI with args against storage and returns its output.
func execute(t *testing.T, storage core.Storage, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	serviceOptions = []notes.Option{notes.WithStorage(storage)}
	t.Cleanup(func() { serviceOptions = nil })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestExecute_ErrorsCloseTheStorage(t *testing.T) {
	storage := &closingStorage{Storage: memory.New()}

	_, err := execute(t, storage, "edit", "missing", "--title", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no note with id missing")
	assert.Equal(t, 1, storage.closed)

	_, err = execute(t, storage, "pin", "missing")
	require.Error(t, err)
	assert.Equal(t, 2, storage.closed)
}

func TestExecute_AddAndList(t *testing.T) {
	storage := &closingStorage{Storage: memory.New()}

	_, err := execute(t, storage, "add", "--title", "Groceries", "milk", "and", "eggs")
	require.NoError(t, err)
	assert.Equal(t, 1, storage.closed)

	out, err := execute(t, storage, "list", "--output", "json")
	require.NoError(t, err)

	var l listing
	require.NoError(t, json.Unmarshal([]byte(out), &l))
	require.Len(t, l.Notes, 1)
	assert.Equal(t, "Groceries", l.Notes[0].Title)
	assert.Equal(t, "milk and eggs", l.Notes[0].Text)
	assert.Equal(t, 2, storage.closed)
}

func TestExecute_InvalidSort(t *testing.T) {
	_, err := execute(t, memory.New(), "list", "--sort", "alphabetical")
	assert.ErrorContains(t, err, `unknown sort "alphabetical"`)
}

func TestExecute_ClearDeclined(t *testing.T) {
	storage := memory.New()
	_, err := execute(t, storage, "add", "keep me")
	require.NoError(t, err)

	// Empty stdin answers no.
	out, err := execute(t, storage, "clear")
	require.NoError(t, err)
	assert.Contains(t, out, core.PromptClearAll+" [y/N] ")
	assert.Contains(t, out, "Cancelled")
	assert.True(t, storage.Has(core.DefaultKey))
}

func TestExecute_WatchNeedsWatchableStorage(t *testing.T) {
	storage := &closingStorage{Storage: memory.New()}

	_, err := execute(t, storage, "watch")
	assert.ErrorContains(t, err, "starting watcher: storage does not support watching")
	assert.Equal(t, 1, storage.closed)
}
