// Package watch reports changed interface descriptor files.
package watch

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/OpticalFlyer/interfacer/descriptor"
)

const changeBuffer = 16

// Watcher publishes the path of a descriptor file whenever its content
// changes or it is removed. Writes that leave the bytes unchanged, such as
// an editor saving twice, are not reported.
type Watcher struct {
	dir     string
	fs      *fsnotify.Watcher
	changes chan string
	hashes  map[string]uint64
	logger  *zap.Logger
}

func New(dir string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		dir:     dir,
		fs:      fw,
		changes: make(chan string, changeBuffer),
		hashes:  make(map[string]uint64),
		logger:  logger.Named("watch"),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		fw.Close()
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() || !descriptor.IsDocumentFile(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if sum, err := hashFile(path); err == nil {
			w.hashes[path] = sum
		}
	}
	return w, nil
}

// Changes delivers changed file paths. It is closed when Run returns.
func (w *Watcher) Changes() <-chan string { return w.changes }

// Run pumps file system events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.changes)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.String("dir", w.dir), zap.Error(err))
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !descriptor.IsDocumentFile(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		if _, ok := w.hashes[ev.Name]; ok {
			delete(w.hashes, ev.Name)
			w.publish(ev.Name)
		}
		return
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}

	sum, err := hashFile(ev.Name)
	if err != nil {
		w.logger.Debug("changed file unreadable", zap.String("path", ev.Name), zap.Error(err))
		return
	}
	if prev, ok := w.hashes[ev.Name]; ok && prev == sum {
		return
	}
	w.hashes[ev.Name] = sum
	w.publish(ev.Name)
}

func (w *Watcher) publish(path string) {
	select {
	case w.changes <- path:
	default:
		// a reload is already pending
		w.logger.Debug("change dropped", zap.String("path", path))
	}
}

func (w *Watcher) Close() error { return w.fs.Close() }

func hashFile(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(data), nil
}
