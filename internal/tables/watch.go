package tables

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a table file when it changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	file     string
	log      *zap.Logger
	onChange func(Tables)
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// Watch starts watching file. Each time the file changes and then stays
// unchanged for a short time, Watch loads it and passes the tables to
// onChange. A file that fails to load is logged and otherwise ignored.
// Watching stops when ctx is canceled or Close is called.
func Watch(ctx context.Context, file string, log *zap.Logger, onChange func(Tables)) (*Watcher, error) {
	return watch(ctx, file, log, onChange, 100*time.Millisecond)
}

func watch(ctx context.Context, file string, log *zap.Logger, onChange func(Tables), debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory so that editors which replace the file are seen.
	if err := fsw.Add(filepath.Dir(file)); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		file:     filepath.Clean(file),
		log:      log,
		onChange: onChange,
		debounce: debounce,
	}
	go w.eventLoop(ctx)
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

func (w *Watcher) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Close()
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.file {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.timer = time.AfterFunc(w.debounce, w.reload)
			w.mu.Unlock()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("table watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	t, err := Load(w.file)
	if err != nil {
		w.log.Warn("table reload failed", zap.String("file", w.file), zap.Error(err))
		return
	}
	w.log.Info("tables reloaded", zap.String("file", w.file), zap.Strings("tables", t.Names()))
	w.onChange(t)
}
