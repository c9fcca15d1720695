package importer

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/recipebox/internal/parser"
)

const reconcileDelay = 200 * time.Millisecond

// EventCallback is called after a watcher-driven import change.
// kind is one of KindCreated, KindUpdated, KindForgotten.
type EventCallback func(kind string, path string)

// Watch starts an fsnotify watcher on root and imports recipe files as they
// change until ctx is cancelled. root must be the directory the Importer's
// storage provider serves.
//
// New directories are added to the watch list and trigger a debounced Sync
// pass; so do removals and renames.
func (im *Importer) Watch(ctx context.Context, root string, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	im.logger.Info("watcher: started", slog.String("root", root))

	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time

	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(reconcileDelay)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(reconcileDelay)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			im.logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			st, err := im.Sync(ctx)
			if err != nil {
				im.logger.Warn("watcher: reconcile failed", slog.String("error", err.Error()))
				continue
			}
			im.logger.Debug("watcher: reconciled",
				slog.Int("created", st.Created),
				slog.Int("updated", st.Updated),
				slog.Int("forgotten", st.Forgotten))

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						im.logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					scheduleReconcile()
					continue
				}
			}

			if !parser.Supported(ev.Name) {
				continue
			}
			rel, relErr := filepath.Rel(root, ev.Name)
			if relErr != nil {
				continue
			}
			rel = filepath.ToSlash(rel)

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				data, readErr := im.files.Read(rel)
				if readErr != nil {
					im.logger.Warn("watcher: read failed", slog.String("path", rel), slog.String("error", readErr.Error()))
					continue
				}
				kind, impErr := im.ImportFile(ctx, rel, data)
				if impErr != nil {
					// Editors often write a file in several steps; the last write wins.
					im.logger.Warn("watcher: import failed", slog.String("path", rel), slog.String("error", impErr.Error()))
					continue
				}
				if kind == "" {
					continue
				}
				im.logger.Debug("watcher: imported", slog.String("path", rel), slog.String("op", kind))
				if cb != nil {
					cb(kind, rel)
				}

			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				// Rename fires on the old path only; the new path arrives as
				// a Create if it stays inside a watched directory.
				if delErr := im.ledger.ForgetImport(ctx, rel); delErr != nil {
					im.logger.Warn("watcher: forget failed", slog.String("path", rel), slog.String("error", delErr.Error()))
				} else {
					im.logger.Debug("watcher: forgot", slog.String("path", rel))
					if cb != nil {
						cb(KindForgotten, rel)
					}
				}
				scheduleReconcile()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			im.logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// addDirsRecursive adds root and all its non-hidden subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && d.Name()[0] == '.' {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
