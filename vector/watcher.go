package vector

import (
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/gogpu/cursor/internal/logx"
)

// Watcher reports changes under a theme directory.
//
// Filesystem events are collapsed into a single pending flag that the owner
// polls with [Watcher.Pending]; the watcher itself never touches theme state.
type Watcher struct {
	fs      *fsnotify.Watcher
	pending atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup

	mu   sync.Mutex
	errs error
}

// Watch starts watching dir.
func Watch(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "vector: create watcher")
	}
	if err := fw.Add(dir); err != nil {
		return nil, multierr.Combine(errors.Wrapf(err, "vector: watch %s", dir), fw.Close())
	}

	w := &Watcher{
		fs:   fw,
		done: make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	logx.Logger().Debug("vector: watching theme", "dir", dir)
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) ||
				ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				w.pending.Store(true)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.errs = multierr.Append(w.errs, err)
			w.mu.Unlock()
		}
	}
}

// Pending reports whether anything changed since the previous call, and
// clears the flag.
func (w *Watcher) Pending() bool {
	return w.pending.Swap(false)
}

// Err returns the watcher errors collected so far, combined.
func (w *Watcher) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errs
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}
