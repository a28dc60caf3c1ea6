package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, ch <-chan string, want int, timeout time.Duration) []string {
	t.Helper()
	var got []string
	deadline := time.After(timeout)
	for len(got) < want {
		select {
		case p, ok := <-ch:
			if !ok {
				return got
			}
			got = append(got, p)
		case <-deadline:
			t.Fatalf("timed out after %v with %d/%d paths", timeout, len(got), want)
		}
	}
	return got
}

func TestStartWatcher_InitialScan(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "existing.pdf", "notas.txt")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}, InitialScan: true}, nil)
	require.NoError(t, err)

	got := collect(t, ch, 1, 2*time.Second)
	assert.Equal(t, "existing.pdf", filepath.Base(got[0]))
}

func TestStartWatcher_InitialScanLargerThanChannelBuffer(t *testing.T) {
	root := t.TempDir()
	const total = 300 // more than the event channel can buffer
	names := make([]string, total)
	for i := range names {
		names[i] = fmt.Sprintf("guia-%03d.pdf", i)
	}
	writeFiles(t, root, names...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}, InitialScan: true}, nil)
	require.NoError(t, err)

	got := collect(t, ch, total, 10*time.Second)
	assert.Len(t, got, total, "every existing file must be delivered, none dropped")

	seen := map[string]struct{}{}
	for _, p := range got {
		seen[filepath.Base(p)] = struct{}{}
	}
	assert.Len(t, seen, total)
}

func TestStartWatcher_NewFile(t *testing.T) {
	root := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, _, err := StartWatcher(ctx, WatchConfig{
		Roots:    []string{root},
		Debounce: 20 * time.Millisecond,
	}, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "nova-guia.pdf"), []byte("x"), 0o644))
	// non-matching extension never shows up
	require.NoError(t, os.WriteFile(filepath.Join(root, "ignore.tmp"), []byte("x"), 0o644))

	got := collect(t, ch, 1, 3*time.Second)
	assert.Equal(t, "nova-guia.pdf", filepath.Base(got[0]))
}

func TestStartWatcher_NoRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{}, nil)
	assert.Error(t, err)
}

func TestStartWatcher_ChannelsCloseOnCancel(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	ch, errCh, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}}, nil)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("event channel did not close")
	}
	select {
	case _, ok := <-errCh:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("error channel did not close")
	}
}
