// Package watcher notifies the panel when the list of changed files may
// have changed: the index or HEAD moved inside .git, or a file in the
// working tree was written.
//
// Working-tree directories are watched individually (fsnotify is not
// recursive), capped at MaxDirs so a huge checkout cannot exhaust
// inotify watches. Beyond the cap edits are picked up on the next
// index change or a manual refresh.
package watcher

import (
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Akashdeep-Patra/scmpanel/internal/logging"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// MaxDirs caps the number of working-tree directories watched.
const MaxDirs = 1024

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"target":       true,
	"dist":         true,
	".cache":       true,
}

// Watch starts watching root and gitDir and calls notify, from its own
// goroutine, at most once per debounce window after a relevant change.
// Call stop to tear it down; notify is not called after stop returns.
func Watch(root, gitDir string, debounce time.Duration, logger *log.Logger, notify func()) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}

	if err := w.Add(gitDir); err != nil {
		_ = w.Close()
		return nil, err
	}
	n := addTree(w, root, logger)
	logger.Debug("watching", "root", root, "dirs", n)

	done := make(chan struct{})
	exited := make(chan struct{})

	// Jitter spreads refreshes when several instances watch one repo.
	jitter := max(debounce/2, 1)

	go func() {
		defer close(exited)
		var timer *time.Timer
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Create) && n < MaxDirs && !insideGit(root, gitDir, ev.Name) {
					if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
						n += addTree(w, ev.Name, logger)
					}
				}
				if shouldIgnore(root, gitDir, ev.Name) {
					continue
				}
				d := debounce + time.Duration(rand.Int64N(int64(jitter)))
				if timer == nil {
					timer = time.NewTimer(d)
				} else {
					timer.Reset(d)
				}
			case <-timerChan(timer):
				timer = nil
				notify()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error", "error", err)
			case <-done:
				if timer != nil {
					timer.Stop()
				}
				return
			}
		}
	}()

	return func() {
		close(done)
		<-exited
		_ = w.Close()
	}, nil
}

// addTree watches dir and its subdirectories until MaxDirs is reached and
// returns how many were added.
func addTree(w *fsnotify.Watcher, dir string, logger *log.Logger) int {
	added := 0
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != dir && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		if len(w.WatchList()) >= MaxDirs+1 {
			return filepath.SkipAll
		}
		if err := w.Add(path); err != nil {
			logger.Debug("watch add failed", "path", path, "error", err)
			return nil
		}
		added++
		return nil
	})
	return added
}

func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

func insideGit(root, gitDir, path string) bool {
	return strings.HasPrefix(path, gitDir+string(filepath.Separator)) ||
		strings.HasPrefix(path, filepath.Join(root, ".git")+string(filepath.Separator))
}

// shouldIgnore reports events that cannot change the list of changed files.
func shouldIgnore(root, gitDir, path string) bool {
	base := filepath.Base(path)

	// Inside .git only the index and HEAD matter; lock files come and go
	// while git itself is running.
	if filepath.Dir(path) == gitDir || insideGit(root, gitDir, path) {
		return base != "index" && base != "HEAD"
	}

	// Editor swap and backup files.
	if strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") ||
		strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#") ||
		strings.HasPrefix(base, "4913") {
		return true
	}
	return false
}
