package source

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/fzmatch/internal/debug"
	fzerrors "github.com/standardbeagle/fzmatch/internal/errors"
)

// DefaultDebounce is used when a watcher is created with a zero delay
const DefaultDebounce = 100 * time.Millisecond

// FileWatcher reports changes to a single input file. The parent directory
// is watched so editors that replace the file by renaming are still seen.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
}

// NewFileWatcher starts watching path. Events that happen before Run is
// called are delivered once Run starts.
func NewFileWatcher(path string, debounce time.Duration) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fzerrors.NewFileError("resolve", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fzerrors.NewFileError("watch", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fzerrors.NewFileError("watch", path, err)
	}

	debug.LogSource("watching %s (debounce %v)\n", abs, debounce)
	return &FileWatcher{watcher: watcher, path: abs, debounce: debounce}, nil
}

// Run calls onChange after each burst of changes to the file, until ctx is
// done. It closes the watcher before returning and never calls onChange
// after it has returned.
func (fw *FileWatcher) Run(ctx context.Context, onChange func()) error {
	d := newDebouncer(fw.debounce, onChange)
	defer func() {
		d.stop()
		fw.watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debug.LogSource("watch event %v for %s\n", event.Op, event.Name)
			d.trigger()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			debug.LogSource("watch error: %v\n", err)
		}
	}
}

// Watch is NewFileWatcher followed by Run
func Watch(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	fw, err := NewFileWatcher(path, debounce)
	if err != nil {
		return err
	}
	return fw.Run(ctx, onChange)
}

// debouncer collapses a burst of triggers into one call
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	fn      func()
	stopped bool
	running sync.WaitGroup
	// calls never overlap
	callMu  sync.Mutex
}

func newDebouncer(delay time.Duration, fn func()) *debouncer {
	return &debouncer{delay: delay, fn: fn}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil && d.timer.Stop() {
		d.running.Done()
	}
	d.running.Add(1)
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *debouncer) fire() {
	defer d.running.Done()

	d.mu.Lock()
	stopped := d.stopped
	d.mu.Unlock()

	if !stopped {
		d.callMu.Lock()
		defer d.callMu.Unlock()
		d.fn()
	}
}

// stop cancels a pending call and waits for a running one
func (d *debouncer) stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.running.Done()
	}
	d.mu.Unlock()

	d.running.Wait()
}
