package controls

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/smasonuk/gosie3d/internal/config"
)

// Watcher reloads the [options] table of a config file when it changes and
// queues the values that differ from the last load. Apply pushes them through
// a Panel, so a file edit behaves like a widget edit.
type Watcher struct {
	path string
	fsw  *fsnotify.Watcher

	mu      sync.Mutex
	last    config.Options
	pending map[string]any

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher starts watching path. current is the parameter set the file was
// loaded into, so only later edits are queued.
func NewWatcher(path string, current config.Options) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	// editors often replace the file, so watch the directory
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}

	w := newWatcher(abs, current)
	w.fsw = fsw
	w.wg.Add(1)
	go w.watch()
	return w, nil
}

func newWatcher(path string, current config.Options) *Watcher {
	return &Watcher{
		path:    path,
		last:    current,
		pending: make(map[string]any),
		done:    make(chan struct{}),
	}
}

func (w *Watcher) watch() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := w.Reload(); err != nil {
				log.Printf("config reload: %v", err)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("config watcher: %v", err)
		}
	}
}

// Reload reads the file now and queues the options that changed.
func (w *Watcher) Reload() error {
	cfg, err := config.Load(w.path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, name := range config.Names() {
		nv, _ := cfg.Options.Value(name)
		ov, _ := w.last.Value(name)
		if nv != ov {
			w.pending[name] = nv
		}
	}
	w.last = cfg.Options
	return nil
}

// Pending returns how many edits are waiting for Apply.
func (w *Watcher) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// Apply sets every queued value on the panel. Call it from the goroutine that
// owns the parameter set.
func (w *Watcher) Apply(p *Panel) error {
	w.mu.Lock()
	pending := w.pending
	w.pending = make(map[string]any)
	w.mu.Unlock()

	var errs []error
	for _, name := range config.Names() {
		v, ok := pending[name]
		if !ok {
			continue
		}
		if err := p.Set(name, v); err != nil {
			errs = append(errs, err)
			continue
		}
		log.Printf("config: %s = %v", name, v)
	}
	return errors.Join(errs...)
}

// Close stops watching.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	var err error
	if w.fsw != nil {
		err = w.fsw.Close()
	}
	w.wg.Wait()
	return err
}
