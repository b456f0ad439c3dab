package cmd

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"queuectl/internal/model"
	"queuectl/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedDLQ(t *testing.T, store *storage.Store) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, store.ReplaceDead([]model.Job{{
		ID: "d1", Command: "false", State: model.StateDead,
		Attempts: 3, MaxRetries: 3,
		CreatedAt: now, UpdatedAt: now, NextRunAt: now,
	}}))
}

func runDlq(t *testing.T, store *storage.Store, input string, args ...string) error {
	t.Helper()
	cmd := DlqCmd(store)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

func TestDlqClearDeclinedLeavesDLQIntact(t *testing.T) {
	store := newTestStore(t)
	seedDLQ(t, store)

	require.NoError(t, runDlq(t, store, "n\n", "clear"))

	dead, err := store.LoadDead()
	require.NoError(t, err)
	assert.Len(t, dead, 1)
}

func TestDlqClearConfirmed(t *testing.T) {
	store := newTestStore(t)
	seedDLQ(t, store)

	require.NoError(t, runDlq(t, store, "y\n", "clear"))

	dead, err := store.LoadDead()
	require.NoError(t, err)
	assert.Empty(t, dead)
}

func TestDlqClearForceSkipsPrompt(t *testing.T) {
	store := newTestStore(t)
	seedDLQ(t, store)

	require.NoError(t, runDlq(t, store, "", "clear", "--force"))

	dead, err := store.LoadDead()
	require.NoError(t, err)
	assert.Empty(t, dead)
}
