package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/DeusData/viewcode/internal/config"
	"github.com/DeusData/viewcode/internal/discover"
	"github.com/DeusData/viewcode/internal/widget"
)

const (
	baseInterval = 1 * time.Second
	maxInterval  = 60 * time.Second
)

type fileSnapshot struct {
	modTime time.Time
	size    int64
}

type rootState struct {
	snapshot map[string]fileSnapshot
	interval time.Duration
	nextPoll time.Time
}

// RegenFunc is called when dumps under root changed.
type RegenFunc func(ctx context.Context, root string) error

// Watcher regenerates a directory of dumps when they change. Polling of
// mtime and size is the source of truth; fsnotify events only make the next
// poll due immediately, so missed events cost latency, not correctness.
type Watcher struct {
	root  string
	regen RegenFunc
	state rootState

	// Tick is the polling clock. Defaults to one second.
	Tick time.Duration
}

// New creates a Watcher for root. regen is called after each detected change.
func New(root string, regen RegenFunc) *Watcher {
	return &Watcher{root: root, regen: regen, Tick: baseInterval}
}

// Run blocks until ctx is cancelled. The first snapshot is a baseline and
// does not trigger regeneration.
func (w *Watcher) Run(ctx context.Context) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("watcher.fsnotify", "err", err, "fallback", "poll")
		fsw = nil
	} else {
		defer fsw.Close()
		w.addDirs(fsw)
	}

	w.poll(ctx)

	ticker := time.NewTicker(w.Tick)
	defer ticker.Stop()

	var events <-chan fsnotify.Event
	var errs <-chan error
	if fsw != nil {
		events, errs = fsw.Events, fsw.Errors
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = fsw.Add(ev.Name)
				}
			}
			if relevant(ev.Name) {
				slog.Debug("watcher.event", "op", ev.Op.String(), "path", ev.Name)
				w.state.nextPoll = time.Time{}
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			slog.Warn("watcher.fsnotify", "err", err)
		case <-ticker.C:
			if !time.Now().Before(w.state.nextPoll) {
				w.poll(ctx)
			}
		}
	}
}

// addDirs watches root and every directory holding a dump.
func (w *Watcher) addDirs(fsw *fsnotify.Watcher) {
	dirs := map[string]bool{w.root: true}
	if files, err := discover.Discover(context.Background(), w.root, nil); err == nil {
		for _, f := range files {
			dirs[filepath.Dir(f.Path)] = true
		}
	}
	for d := range dirs {
		if err := fsw.Add(d); err != nil {
			slog.Warn("watcher.add", "dir", d, "err", err)
		}
	}
}

func relevant(path string) bool {
	if filepath.Base(path) == config.FileName {
		return true
	}
	_, ok := widget.FormatForPath(path)
	return ok
}

// poll captures a snapshot and compares it with the previous one.
func (w *Watcher) poll(ctx context.Context) {
	state := &w.state
	if _, err := os.Stat(w.root); err != nil {
		slog.Warn("watcher.root_gone", "path", w.root)
		state.nextPoll = time.Now().Add(maxInterval)
		return
	}

	snap, err := captureSnapshot(w.root)
	if err != nil {
		slog.Warn("watcher.snapshot", "path", w.root, "err", err)
		state.nextPoll = time.Now().Add(state.interval)
		return
	}

	interval := pollInterval(len(snap))

	if state.snapshot == nil {
		slog.Debug("watcher.baseline", "path", w.root, "files", len(snap))
		state.snapshot = snap
		state.interval = interval
		state.nextPoll = time.Now().Add(interval)
		return
	}

	if snapshotsEqual(state.snapshot, snap) {
		state.interval = interval
		state.nextPoll = time.Now().Add(interval)
		return
	}

	slog.Info("watcher.changed", "path", w.root, "files", len(snap))
	if err := w.regen(ctx, w.root); err != nil {
		slog.Warn("watcher.regen", "path", w.root, "err", err)
		// Keep the old snapshot so the next cycle retries.
		state.nextPoll = time.Now().Add(interval)
		return
	}

	state.snapshot = snap
	state.interval = interval
	state.nextPoll = time.Now().Add(interval)
}

// captureSnapshot records mtime and size of every dump plus the config file.
func captureSnapshot(root string) (map[string]fileSnapshot, error) {
	files, err := discover.Discover(context.Background(), root, nil)
	if err != nil {
		return nil, err
	}

	snap := make(map[string]fileSnapshot, len(files)+1)
	paths := make(map[string]string, len(files)+1)
	for _, f := range files {
		paths[f.RelPath] = f.Path
	}
	paths[config.FileName] = filepath.Join(root, config.FileName)
	for rel, path := range paths {
		info, statErr := os.Stat(path)
		if statErr != nil {
			continue
		}
		snap[rel] = fileSnapshot{
			modTime: info.ModTime(),
			size:    info.Size(),
		}
	}
	return snap, nil
}

// snapshotsEqual returns true if two snapshots have identical files with same mtime+size.
func snapshotsEqual(a, b map[string]fileSnapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for path, aSnap := range a {
		bSnap, ok := b[path]
		if !ok {
			return false
		}
		if !aSnap.modTime.Equal(bSnap.modTime) || aSnap.size != bSnap.size {
			return false
		}
	}
	return true
}

// pollInterval computes the adaptive interval from file count.
// 1s base + 1s per 500 files, capped at 60s.
func pollInterval(fileCount int) time.Duration {
	ms := 1000 + (fileCount/500)*1000
	if ms > 60000 {
		ms = 60000
	}
	return time.Duration(ms) * time.Millisecond
}
