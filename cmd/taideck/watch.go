package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/reusee/taideck/logs"
	"github.com/reusee/taideck/renders"
)

// watchLoop rerenders the definition file on every save. A broken edit
// keeps the last good output on screen, so the terminal behaves like the
// canvas would.
func watchLoop(ctx context.Context, logger logs.Logger, runtime *renders.Runtime, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// editors save by rename, so watch the directory and filter
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	renderFile(ctx, logger, runtime, path)

	// coalesce the create/write bursts a single save produces
	var pending <-chan time.Time

	for {
		select {

		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			eventPath, err := filepath.Abs(event.Name)
			if err != nil || eventPath != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(100 * time.Millisecond)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch", "error", err)

		case <-pending:
			pending = nil
			renderFile(ctx, logger, runtime, path)

		}
	}
}

func renderFile(ctx context.Context, logger logs.Logger, runtime *renders.Runtime, path string) {
	def, err := loadDefinition()
	if err != nil {
		logger.Error("load definition", "path", path, "error", err)
		return
	}

	node, renderErr := renderOnce(ctx, runtime, def)
	if renderErr != nil {
		logger.Warn("render failed", "component", def.ID, "error", renderErr)
	}
	if err := output(os.Stdout, node); err != nil {
		logger.Error("write output", "error", err)
	}
}
