package config

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk. It never blocks: the frame loop
// calls Poll once per frame and gets the new Config only when a reload happened.
type Watcher struct {
	path  string
	fsw   *fsnotify.Watcher
	layer func(*Config) error
}

// Watch starts watching path. The parent directory is watched so editors that replace the
// file (write to temp, rename) are still seen; it is created if missing. layer, when not nil,
// is applied to every reloaded config so environment and flag overrides keep winning over
// the file.
func Watch(path string, layer func(*Config) error) (*Watcher, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return &Watcher{path: filepath.Clean(path), fsw: fsw, layer: layer}, nil
}

// Poll drains pending file events. It returns the reloaded config and true if the watched
// file was written or created, and any watcher or parse error seen while draining.
func (w *Watcher) Poll() (Config, bool, error) {
	var (
		cfg     Config
		changed bool
		lastErr error
	)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return cfg, changed, lastErr
			}
			if filepath.Clean(ev.Name) != w.path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			c, err := Load(w.path)
			if err != nil {
				lastErr = err
				continue
			}
			if w.layer != nil {
				if err := w.layer(&c); err != nil {
					lastErr = err
					continue
				}
			}
			cfg, changed = c, true
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return cfg, changed, lastErr
			}
			lastErr = err
		default:
			return cfg, changed, lastErr
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
