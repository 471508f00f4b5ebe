package app

import (
	"context"
	"image/color"
	"path/filepath"
	"testing"
	"time"

	"github.com/smasonuk/gosie3d"
	"github.com/smasonuk/gosie3d/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(variant string) *config.Config {
	cfg := config.Default()
	cfg.Variant = variant
	cfg.Scene.SphereSegments = 8
	cfg.Scene.PlaneSegments = 2
	return cfg
}

func TestNewVariants(t *testing.T) {
	testCases := []struct {
		variant string
		objects int
		spots   int
	}{
		{config.VariantBasic, 2, 1},
		{config.VariantQuad, 1, 4},
	}
	for _, tc := range testCases {
		t.Run(tc.variant, func(t *testing.T) {
			a, err := New(testConfig(tc.variant))
			require.NoError(t, err)
			defer a.Close()

			assert.Equal(t, tc.objects, a.World().ObjectCount())
			spots := a.World().SpotLights()
			require.Len(t, spots, tc.spots)
			for _, s := range spots {
				assert.Equal(t, 100000.0, s.Intensity)
				assert.Equal(t, 0.2, s.Angle)
			}
			assert.Len(t, a.Panel().Controls(), len(config.Names()))
		})
	}
}

func TestNewRejects(t *testing.T) {
	_, err := New(testConfig(config.VariantModel))
	assert.ErrorIs(t, err, config.ErrInvalid, "model variant without a model")

	cfg := testConfig(config.VariantBasic)
	cfg.Options.SphereColor = "not a color"
	_, err = New(cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)

	cfg = testConfig("fancy")
	_, err = New(cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRunHeadless(t *testing.T) {
	a, err := New(testConfig(config.VariantQuad))
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, a.RunHeadless(ctx, 5, time.Millisecond))

	assert.Equal(t, 5, a.Renders())
	assert.InDelta(t, 0.05, a.Loop().Step(), 1e-9)
	assert.InDelta(t, a.Loop().Offset(), a.sphere.GetPosition().Y, 1e-9)
	assert.True(t, a.Scheduler().Stopped())
}

func TestStopAfter(t *testing.T) {
	a, err := New(testConfig(config.VariantBasic))
	require.NoError(t, err)
	defer a.Close()

	a.StopAfter(3)
	for range 5 {
		a.Scheduler().Frame()
	}
	assert.Equal(t, 3, a.Renders())
	assert.True(t, a.Scheduler().Stopped())
}

func TestPanelEditReachesSceneNextFrame(t *testing.T) {
	a, err := New(testConfig(config.VariantQuad))
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Panel().Set(config.Wireframe, true))
	require.NoError(t, a.Panel().Set(config.Intensity, 500.0))
	require.NoError(t, a.Panel().Set(config.SphereColor, "#ff0000"))
	assert.False(t, a.sphere.GetDrawLinesOnly(), "not before the next frame")

	a.Scheduler().Frame()
	assert.True(t, a.sphere.GetDrawLinesOnly())
	col, ok := a.sphere.GetColor()
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, col)
	for _, s := range a.World().SpotLights() {
		assert.Equal(t, 500.0, s.Intensity)
	}
}

func TestModelVariantLoadsModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.ply")
	require.NoError(t, gosie3d.NewBox(2, 2, 2, color.RGBA{B: 255, A: 255}).SavePLYWithFaceColors(path))

	cfg := testConfig(config.VariantModel)
	cfg.Scene.ModelPath = path
	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Empty(t, a.Models(), "added on the game goroutine only")
	a.Loader().Wait()
	a.applyEdits()

	require.Len(t, a.Models(), 1)
	m, ok := a.World().Object(a.Models()[0])
	require.True(t, ok)
	assert.Equal(t, 6, m.FaceCount())
	assert.Equal(t, 3, a.World().ObjectCount())

	a.Scheduler().Frame()
	assert.Equal(t, 1, a.Renders())
}

func TestLoadModelFailureLeavesScene(t *testing.T) {
	a, err := New(testConfig(config.VariantBasic))
	require.NoError(t, err)
	defer a.Close()

	a.LoadModel(filepath.Join(t.TempDir(), "missing.glb"))
	a.Loader().Wait()
	a.applyEdits()
	assert.Empty(t, a.Models())
	assert.Equal(t, 2, a.World().ObjectCount())
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#333333")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}, c)

	_, err = parseColor("#33")
	assert.Error(t, err)
}
