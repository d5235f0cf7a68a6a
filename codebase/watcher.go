package codebase

import (
	"context"
	"os"
	"time"
)

// FileWatcher polls the root directory and rescans files whose
// modification time changed.
type FileWatcher struct {
	codebase     *Codebase
	pollInterval time.Duration
	modTimes     map[string]time.Time
	// OnChange is called after a file was rescanned or removed.
	OnChange func(path string, f *FileInfo)
	// Skip leaves files alone, such as documents open in an editor.
	Skip func(path string) bool
}

func NewFileWatcher(c *Codebase, interval time.Duration) *FileWatcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &FileWatcher{
		codebase:     c,
		pollInterval: interval,
		modTimes:     make(map[string]time.Time),
	}
}

// Run polls until ctx is done.
func (w *FileWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.Poll()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Poll()
		}
	}
}

// Poll runs a single scan and returns the paths that changed.
func (w *FileWatcher) Poll() []string {
	paths, err := Walk(w.codebase.RootDir())
	if err != nil {
		return nil
	}

	var changed []string
	current := make(map[string]bool, len(paths))
	for _, path := range paths {
		current[path] = true
		if w.Skip != nil && w.Skip(path) {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			continue
		}
		w.modTimes[path] = info.ModTime()
		if err := w.codebase.ScanFile(path); err != nil {
			continue
		}
		changed = append(changed, path)
		w.notify(path, w.codebase.GetFile(path))
	}

	for path := range w.modTimes {
		if !current[path] && (w.Skip == nil || !w.Skip(path)) {
			delete(w.modTimes, path)
			w.codebase.RemoveFile(path)
			changed = append(changed, path)
			w.notify(path, nil)
		}
	}
	return changed
}

func (w *FileWatcher) notify(path string, f *FileInfo) {
	if w.OnChange != nil {
		w.OnChange(path, f)
	}
}
