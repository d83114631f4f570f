package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/corey/funclen/internal/ports"
)

// WatcherFactory creates a watcher that skips the given directory names.
type WatcherFactory func(ignoreDirs []string) (ports.Watcher, error)

// watchRoot is one watched directory and the name the user gave for it.
type watchRoot struct {
	abs     string
	display string
	only    map[string]bool // non-nil when watching a single file's parent
}

// Watch runs an initial analysis over paths, then re-analyzes every changed
// source file with a fresh analyzer until ctx is cancelled. Runs are
// serialized; the callback goroutines never share an analyzer.
func (a *App) Watch(ctx context.Context, paths []string, newWatcher WatcherFactory) error {
	a.Run(paths)

	roots := a.watchRoots(paths)
	if len(roots) == 0 {
		return errors.New("watch: no existing paths to watch")
	}

	var mu sync.Mutex
	watchers := make([]ports.Watcher, 0, len(roots))
	stopAll := func() error {
		var errs []error
		for _, w := range watchers {
			errs = append(errs, w.Stop())
		}
		return errors.Join(errs...)
	}

	for _, root := range roots {
		w, err := newWatcher(a.cfg.Settings.IgnoreDirectories)
		if err != nil {
			return errors.Join(fmt.Errorf("watch %s: %w", root.display, err), stopAll())
		}
		watchers = append(watchers, w)

		err = w.Watch(root.abs, func(changed string) {
			mu.Lock()
			defer mu.Unlock()
			a.onFileChanged(root, changed)
		})
		if err != nil {
			return errors.Join(fmt.Errorf("watch %s: %w", root.display, err), stopAll())
		}
		a.cfg.Logger.Info().Str("path", root.display).Msg("watching")
	}

	<-ctx.Done()
	return stopAll()
}

// watchRoots resolves path arguments into distinct watched directories.
func (a *App) watchRoots(paths []string) []*watchRoot {
	byAbs := make(map[string]*watchRoot)
	var roots []*watchRoot
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		dir, display := p, p
		if !info.IsDir() {
			dir, display = filepath.Dir(p), filepath.Dir(p)
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}

		root, ok := byAbs[abs]
		if !ok {
			root = &watchRoot{abs: abs, display: display}
			if !info.IsDir() {
				root.only = make(map[string]bool)
			}
			byAbs[abs] = root
			roots = append(roots, root)
		}
		switch {
		case info.IsDir():
			root.only = nil
		case root.only != nil:
			fileAbs, _ := filepath.Abs(p)
			root.only[fileAbs] = true
		}
	}
	return roots
}

// onFileChanged re-analyzes one changed file. Deleted files and files the
// directory walk would not pick up are ignored.
func (a *App) onFileChanged(root *watchRoot, changed string) {
	if root.only != nil && !root.only[changed] {
		return
	}
	if root.only == nil && !a.cfg.Parser.SupportsExtension(filepath.Ext(changed)) {
		return
	}

	info, err := os.Stat(changed)
	if err != nil || !info.Mode().IsRegular() {
		a.cfg.Logger.Debug().Str("file", changed).Msg("changed file no longer exists")
		return
	}

	display := changed
	if rel, err := filepath.Rel(root.abs, changed); err == nil {
		display = filepath.Join(root.display, rel)
	}

	an := a.newAnalyzer()
	if root.only == nil && an.IgnoredPath(display) {
		return
	}
	an.AnalyzeFile(display, a.cfg.IgnoreTest)
	a.cfg.Logger.Debug().Str("file", display).Bool("too_long", an.TooLongFunctions()).Msg("re-analyzed")
}
