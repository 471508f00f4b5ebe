// Package assets loads models and textures off the game goroutine and hands
// the results back to it.
package assets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/smasonuk/gosie3d"
	"golang.org/x/sync/singleflight"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrPending           = errors.New("load still in progress")
)

// ParseFunc turns a file into a model.
type ParseFunc func(path string) (*gosie3d.Model, error)

// LoadModel parses a model file, choosing the format from its extension.
func LoadModel(path string) (*gosie3d.Model, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf", ".glb":
		return gosie3d.LoadObjectFromGLTFFile(path)
	case ".ply":
		return gosie3d.LoadObjectFromPLYFile(path, gosie3d.FACE_NORMAL, true)
	case ".dxf":
		return gosie3d.LoadObjectFromDXFFile(path, gosie3d.FACE_NORMAL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Future is the result of one Load.
type Future struct {
	path  string
	done  chan struct{}
	model *gosie3d.Model
	err   error
}

func (f *Future) Path() string { return f.path }

// Done is closed once the model is parsed or has failed.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the load finishes or ctx is done.
func (f *Future) Wait(ctx context.Context) (*gosie3d.Model, error) {
	select {
	case <-f.done:
		return f.model, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result returns the outcome without blocking, or ErrPending.
func (f *Future) Result() (*gosie3d.Model, error) {
	select {
	case <-f.done:
		return f.model, f.err
	default:
		return nil, ErrPending
	}
}

type completion struct {
	future    *Future
	onSuccess func(*gosie3d.Model)
}

// Loader parses files in the background. Completion handlers only run inside
// Dispatch, so the scene is changed on the goroutine that calls it.
type Loader struct {
	parse ParseFunc
	group singleflight.Group

	mu        sync.Mutex
	completed []completion
	inflight  sync.WaitGroup
}

func NewLoader() *Loader {
	return NewLoaderWithParser(LoadModel)
}

func NewLoaderWithParser(parse ParseFunc) *Loader {
	return &Loader{parse: parse}
}

// Load starts parsing path and returns at once. Loads of the same path that
// overlap share one parse; each caller gets its own clone of the model.
func (l *Loader) Load(path string, onSuccess func(*gosie3d.Model)) *Future {
	f := &Future{path: path, done: make(chan struct{})}

	l.inflight.Add(1)
	go func() {
		defer l.inflight.Done()

		v, err, shared := l.group.Do(path, func() (any, error) {
			return l.parse(path)
		})
		if err == nil {
			m := v.(*gosie3d.Model)
			if shared {
				m = m.Clone()
			}
			f.model = m
		} else {
			f.err = fmt.Errorf("loading %s: %w", path, err)
		}
		close(f.done)

		l.mu.Lock()
		l.completed = append(l.completed, completion{future: f, onSuccess: onSuccess})
		l.mu.Unlock()
	}()
	return f
}

// Dispatch runs the handlers of loads finished since the last call and
// returns how many loads it handled. Failed loads are logged and their handler
// is not called.
func (l *Loader) Dispatch() int {
	l.mu.Lock()
	done := l.completed
	l.completed = nil
	l.mu.Unlock()

	for _, c := range done {
		if c.future.err != nil {
			log.Printf("%v", c.future.err)
			continue
		}
		log.Printf("Loaded model %s (%d faces)", c.future.path, c.future.model.FaceCount())
		if c.onSuccess != nil {
			c.onSuccess(c.future.model)
		}
	}
	return len(done)
}

// Wait blocks until every started load has finished parsing.
func (l *Loader) Wait() {
	l.inflight.Wait()
}
