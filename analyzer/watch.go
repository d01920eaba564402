package analyzer

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceInterval is the time to wait after the last file event before re-analyzing
var DebounceInterval = 100 * time.Millisecond

// Watch analyzes location and re-analyzes it on every change of a supported file,
// calling onReport with each report. Unchanged files are served from the cache.
// It blocks until ctx is done.
func (a *Analyzer) Watch(ctx context.Context, location string, onReport func(*Report)) error {
	if a.cache == nil {
		a.cache = NewCache()
	}
	project, err := a.detector.DetectProject(ctx, location)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	root := filepath.Join(project.RootPath, filepath.FromSlash(project.RelativePath))
	if err = a.watchDirs(watcher, project.RootPath, root); err != nil {
		return err
	}

	var mux sync.Mutex
	run := func() {
		mux.Lock()
		defer mux.Unlock()
		report, err := a.AnalyzeProject(ctx, location)
		if err != nil {
			if ctx.Err() == nil {
				a.logger.Error("analysis failed", "error", err)
			}
			return
		}
		onReport(report)
	}
	run()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Has(fsnotify.Create) {
				if dir, err := filepath.Abs(event.Name); err == nil {
					_ = a.watchDirs(watcher, project.RootPath, dir)
				}
			}
			relPath, err := filepath.Rel(project.RootPath, event.Name)
			if err != nil || !a.factory.Supports(relPath) {
				continue
			}
			a.logger.Debug("file event detected", "file", filepath.ToSlash(relPath), "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(DebounceInterval, run)
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			a.logger.Error("file watcher error", "error", err)
		}
	}
}

// watchDirs adds location and its analyzed subdirectories to the watcher
func (a *Analyzer) watchDirs(watcher *fsnotify.Watcher, root, location string) error {
	return filepath.WalkDir(location, func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil || !entry.IsDir() {
			return nil
		}
		if filePath != location {
			relPath, err := filepath.Rel(root, filePath)
			if err == nil && a.skipDir(filepath.ToSlash(relPath)) {
				return filepath.SkipDir
			}
		}
		return watcher.Add(filePath)
	})
}
