package main

// Notes:
// - chapterForEvent: we test the event filter without a real watcher.
// - watchLoop: we drive it through plain channels with a short debounce and
//   check batching, ordering, and shutdown. fsnotify itself is not exercised;
//   runWatchCmd only connects the watcher's channels to watchLoop.

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/alnah/go-serialpub"
)

var testCalendar = serialpub.NewCalendar(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 30)

// ---------------------------------------------------------------------------
// TestChapterForEvent - Event filtering
// ---------------------------------------------------------------------------

func TestChapterForEvent(t *testing.T) {
	t.Parallel()

	dir := filepath.Join("site", "manuscript")
	tests := []struct {
		name   string
		ev     fsnotify.Event
		want   int
		wantOK bool
	}{
		{"write padded", fsnotify.Event{Name: filepath.Join(dir, "007.md"), Op: fsnotify.Write}, 7, true},
		{"create plain", fsnotify.Event{Name: filepath.Join(dir, "12.md"), Op: fsnotify.Create}, 12, true},
		{"dated file", fsnotify.Event{Name: filepath.Join(dir, "2026-01-05.md"), Op: fsnotify.Write}, 5, true},
		{"write and chmod", fsnotify.Event{Name: filepath.Join(dir, "003.md"), Op: fsnotify.Write | fsnotify.Chmod}, 3, true},
		{"remove", fsnotify.Event{Name: filepath.Join(dir, "003.md"), Op: fsnotify.Remove}, 0, false},
		{"rename", fsnotify.Event{Name: filepath.Join(dir, "003.md"), Op: fsnotify.Rename}, 0, false},
		{"chmod only", fsnotify.Event{Name: filepath.Join(dir, "003.md"), Op: fsnotify.Chmod}, 0, false},
		{"not markdown", fsnotify.Event{Name: filepath.Join(dir, "003.txt"), Op: fsnotify.Write}, 0, false},
		{"editor swap file", fsnotify.Event{Name: filepath.Join(dir, ".003.md.swp"), Op: fsnotify.Write}, 0, false},
		{"beyond series", fsnotify.Event{Name: filepath.Join(dir, "031.md"), Op: fsnotify.Write}, 0, false},
		{"date outside series", fsnotify.Event{Name: filepath.Join(dir, "2025-12-31.md"), Op: fsnotify.Write}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := chapterForEvent(tt.ev, testCalendar)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("chapterForEvent(%v) = (%d, %v), want (%d, %v)", tt.ev, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWatchLoop - Debounced batches
// ---------------------------------------------------------------------------

func TestWatchLoop_BatchesBurst(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan fsnotify.Event)
	errs := make(chan error)
	batches := make(chan []int, 4)
	done := make(chan struct{})

	go func() {
		defer close(done)
		watchLoop(ctx, events, errs, 100*time.Millisecond, testCalendar, zap.NewNop(),
			func(_ context.Context, chapters []int) { batches <- chapters })
	}()

	events <- fsnotify.Event{Name: "m/005.md", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "m/003.md", Op: fsnotify.Create}
	events <- fsnotify.Event{Name: "m/notes.txt", Op: fsnotify.Write}
	errs <- errors.New("queue overflow")
	events <- fsnotify.Event{Name: "m/005.md", Op: fsnotify.Write}

	select {
	case got := <-batches:
		if !slices.Equal(got, []int{3, 5}) {
			t.Errorf("batch = %v, want [3 5]", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no batch published")
	}

	events <- fsnotify.Event{Name: "m/2026-01-09.md", Op: fsnotify.Write}
	select {
	case got := <-batches:
		if !slices.Equal(got, []int{9}) {
			t.Errorf("second batch = %v, want [9]", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no second batch published")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watchLoop did not stop after cancel")
	}
}

func TestWatchLoop_ClosedEvents(t *testing.T) {
	t.Parallel()

	events := make(chan fsnotify.Event)
	close(events)
	done := make(chan struct{})

	go func() {
		defer close(done)
		watchLoop(context.Background(), events, make(chan error), time.Millisecond, testCalendar, zap.NewNop(),
			func(context.Context, []int) { t.Error("publish called without events") })
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watchLoop did not return on closed channel")
	}
}

func TestChangedCount(t *testing.T) {
	t.Parallel()

	changes := []serialpub.Change{
		{Action: serialpub.ActionCreate},
		{Action: serialpub.ActionUnchanged},
		{Action: serialpub.ActionUpdate},
	}
	if got := changedCount(changes); got != 2 {
		t.Errorf("changedCount() = %d, want 2", got)
	}
}
