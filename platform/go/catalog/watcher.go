package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher rebuilds the catalog when files under Dir change and swaps it into Holder.
type Watcher struct {
	Dir      string
	Holder   *Holder
	Rebuild  func() (*Catalog, error)
	Logger   *zap.Logger
	Debounce time.Duration
}

func NewWatcher(dir string, holder *Holder, rebuild func() (*Catalog, error), logger *zap.Logger) *Watcher {
	if holder == nil {
		panic("catalog holder is required")
	}
	if rebuild == nil {
		panic("rebuild func is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Watcher{Dir: dir, Holder: holder, Rebuild: rebuild, Logger: logger, Debounce: defaultDebounce}
}

// Run blocks until ctx is cancelled. A failed rebuild keeps the previous snapshot.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fs watcher: %w", err)
	}
	defer fw.Close()

	if err := addTree(fw, w.Dir); err != nil {
		return err
	}
	w.Logger.Info("watching content", zap.String("dir", w.Dir))

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addTree(fw, ev.Name); err != nil {
						w.Logger.Warn("watch new directory", zap.String("dir", ev.Name), zap.Error(err))
					}
				}
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("content watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	next, err := w.Rebuild()
	if err != nil {
		w.Logger.Error("content reload failed, keeping previous snapshot", zap.Error(err))
		return
	}
	if next == nil {
		w.Logger.Error("content reload returned no catalog, keeping previous snapshot")
		return
	}
	w.Holder.Swap(next)
	w.Logger.Info("content reloaded",
		zap.Int("locations", len(next.locations)),
		zap.Int("services", len(next.services)),
		zap.Int("spotlights", len(next.spotlights)),
	)
}

func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}
