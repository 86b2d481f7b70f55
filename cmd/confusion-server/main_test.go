package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/confusion-tui/internal/devserver/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdFlagDefaults(t *testing.T) {
	cmd := newRootCmd()
	flags := cmd.Flags()
	for name, want := range map[string]string{
		"addr":   ":3000",
		"db":     "confusion.db",
		"seed":   "",
		"delay":  "0s",
		"reseed": "false",
	} {
		f := flags.Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, want, f.DefValue, name)
	}
}

func TestRootCmdRejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(new(nopWriter))
	cmd.SetErr(new(nopWriter))
	assert.Error(t, cmd.Execute())
}

func TestSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	defer st.Close()
	log := zerolog.Nop()

	require.NoError(t, seedIfEmpty(ctx, st, serverOptions{}, log))
	n, err := st.CountDishes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	path := filepath.Join(t.TempDir(), "menu.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dishes:\n  - id: x\n    name: Soup\n"), 0o600))

	require.NoError(t, seedIfEmpty(ctx, st, serverOptions{seed: path}, log))
	n, err = st.CountDishes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n, "existing data is kept without --reseed")

	require.NoError(t, seedIfEmpty(ctx, st, serverOptions{seed: path, reseed: true}, log))
	n, err = st.CountDishes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, serverOptions{addr: "127.0.0.1:0", db: ":memory:"}, zerolog.Nop())
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
