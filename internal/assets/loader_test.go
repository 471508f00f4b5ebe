package assets

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smasonuk/gosie3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBroken = errors.New("broken file")

func boxParser(calls *atomic.Int32, release <-chan struct{}) ParseFunc {
	return func(path string) (*gosie3d.Model, error) {
		calls.Add(1)
		if release != nil {
			<-release
		}
		if path == "broken.ply" {
			return nil, errBroken
		}
		m := gosie3d.NewBox(1, 1, 1, color.RGBA{R: 255, A: 255})
		m.Name = path
		return m, nil
	}
}

func TestLoaderDispatchRunsHandlers(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	l := NewLoaderWithParser(boxParser(&calls, release))

	var got []*gosie3d.Model
	f := l.Load("box.ply", func(m *gosie3d.Model) { got = append(got, m) })

	_, err := f.Result()
	assert.ErrorIs(t, err, ErrPending)
	assert.Zero(t, l.Dispatch(), "nothing finished yet")

	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	m, err := f.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "box.ply", m.Name)
	assert.Empty(t, got, "handlers wait for Dispatch")

	l.Wait()
	assert.Equal(t, 1, l.Dispatch())
	require.Len(t, got, 1)
	assert.Same(t, m, got[0])
	assert.Zero(t, l.Dispatch())
}

func TestLoaderErrorSkipsHandler(t *testing.T) {
	var calls atomic.Int32
	l := NewLoaderWithParser(boxParser(&calls, nil))

	called := false
	f := l.Load("broken.ply", func(*gosie3d.Model) { called = true })
	l.Wait()

	_, err := f.Result()
	assert.ErrorIs(t, err, errBroken)
	assert.Contains(t, err.Error(), "broken.ply")
	assert.Equal(t, 1, l.Dispatch())
	assert.False(t, called)
}

func TestLoaderSharedLoadsAreIndependent(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	l := NewLoaderWithParser(boxParser(&calls, release))

	a := l.Load("box.ply", nil)
	b := l.Load("box.ply", nil)
	time.Sleep(20 * time.Millisecond)
	close(release)
	l.Wait()

	ma, err := a.Result()
	require.NoError(t, err)
	mb, err := b.Result()
	require.NoError(t, err)

	assert.NotSame(t, ma, mb)
	assert.LessOrEqual(t, calls.Load(), int32(2))
	ma.SetPosition(5, 0, 0)
	assert.Zero(t, mb.GetPosition().X)
	assert.Equal(t, 2, l.Dispatch())
}

func TestWaitHonoursContext(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	l := NewLoaderWithParser(boxParser(&calls, release))
	f := l.Load("slow.ply", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	<-f.Done()
	assert.Equal(t, "slow.ply", f.Path())
}

func TestLoadModelUnsupported(t *testing.T) {
	_, err := LoadModel("scene.obj")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	l := NewLoader()
	f := l.Load("teapot.3ds", nil)
	l.Wait()
	_, err = f.Result()
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoaderReportsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ply")
	body := "ply\nformat ascii 1.0\nelement vertex 1\nelement face 1\nend_header\n0 0 0\n-1\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	l := NewLoader()
	called := false
	f := l.Load(path, func(*gosie3d.Model) { called = true })
	l.Wait()

	_, err := f.Result()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.ply")
	assert.Equal(t, 1, l.Dispatch())
	assert.False(t, called)
}
