package main

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/alnah/go-serialpub"
)

// runWatchCmd republishes chapters whenever their manuscript file is
// created or written, until interrupted.
func runWatchCmd(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseWatchFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	pub, cfg, logger, err := newPublisher(flags.common, env)
	if err != nil {
		return err
	}

	dir := cfg.Resolve(cfg.Paths.Manuscript)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "watching %s (Ctrl+C to stop)\n", displayPath(cfg.Paths.Root, dir))
	}

	cal := pub.Calendar()
	publish := func(ctx context.Context, chapters []int) {
		for _, n := range chapters {
			res, err := pub.Publish(ctx, serialpub.Number(n), serialpub.PublishOptions{})
			if err != nil {
				logger.Error("publish failed", zap.Int("chapter", n), zap.Error(err))
				continue
			}
			if !flags.common.quiet {
				fmt.Fprintf(env.Stdout, "published chapter %d: %q (%d changed)\n",
					n, res.Chapter.Title, changedCount(res.Changes))
			}
		}
	}

	watchLoop(ctx, w.Events, w.Errors, flags.debounce, cal, logger, publish)
	return nil
}

// watchLoop collects chapter numbers from manuscript events and hands them
// to publish once no event has arrived for the debounce period. Editors
// often write a file several times in a row; each chapter is published once
// per burst, in ascending order. Returns when ctx is done or a channel closes.
func watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	debounce time.Duration,
	cal serialpub.Calendar,
	logger *zap.Logger,
	publish func(context.Context, []int),
) {
	pending := make(map[int]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			fire = timer.C
			return
		}
		timer.Reset(debounce)
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("watcher stopped")
			return

		case <-fire:
			if len(pending) == 0 {
				continue
			}
			chapters := make([]int, 0, len(pending))
			for n := range pending {
				chapters = append(chapters, n)
			}
			clear(pending)
			slices.Sort(chapters)
			publish(ctx, chapters)

		case ev, ok := <-events:
			if !ok {
				return
			}
			n, ok := chapterForEvent(ev, cal)
			if !ok {
				continue
			}
			logger.Debug("manuscript changed", zap.String("path", ev.Name), zap.Int("chapter", n))
			pending[n] = struct{}{}
			schedule()

		case err, ok := <-errs:
			if !ok {
				return
			}
			logger.Error("watcher error", zap.Error(err))
		}
	}
}

// chapterForEvent maps a create or write of a manuscript file to its
// chapter number. Removals, renames, and other files are ignored.
func chapterForEvent(ev fsnotify.Event, cal serialpub.Calendar) (int, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return 0, false
	}
	return serialpub.ChapterFromFileName(filepath.Base(ev.Name), cal)
}

func changedCount(changes []serialpub.Change) int {
	n := 0
	for _, c := range changes {
		if c.Action != serialpub.ActionUnchanged {
			n++
		}
	}
	return n
}
