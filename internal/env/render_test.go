package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/linefollower/internal/config"
	"github.com/banshee-data/linefollower/internal/timeutil"
)

func TestRender_Disabled(t *testing.T) {
	e := newRingEnv(t, ringConfig())
	_, _, err := e.Reset(ptr(int64(1)))
	require.NoError(t, err)

	img, err := e.Render()
	assert.NoError(t, err)
	assert.Nil(t, img)
	assert.NoError(t, e.Close())
}

func TestRender_RGBArray(t *testing.T) {
	cfg := ringConfig()
	cfg.RenderMode = ptr(config.RenderRGBArray)
	e := newRingEnv(t, cfg)

	_, err := e.Render()
	assert.ErrorIs(t, err, ErrNotReset)

	_, _, err = e.Reset(ptr(int64(1)))
	require.NoError(t, err)
	before, _ := e.Pose()
	pending := e.PendingWaypoints()

	img, err := e.Render()
	require.NoError(t, err)
	assert.Equal(t, trackW, img.Bounds().Dx())
	assert.Equal(t, trackH, img.Bounds().Dy())

	// rendering is a pure read
	after, _ := e.Pose()
	assert.Equal(t, before, after)
	assert.Equal(t, pending, e.PendingWaypoints())
	assert.Equal(t, 0, e.Steps())

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())
	img, err = e.Render()
	require.NoError(t, err)
	assert.NotNil(t, img)
}

func TestRender_FramesMode(t *testing.T) {
	cfg := ringConfig()
	cfg.RenderMode = ptr(config.RenderFrames)
	cfg.FrameDir = ptr("/frames")
	cfg.RenderFPS = ptr(20)

	mfs := ringFS(t)
	clock := timeutil.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	e, err := New(cfg, WithFileSystem(mfs), WithClock(clock))
	require.NoError(t, err)

	_, _, err = e.Reset(ptr(int64(4)))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := e.Step(SlowLeft)
		require.NoError(t, err)
	}

	assert.Len(t, mfs.Files("/frames"), 4)
	assert.True(t, mfs.Exists("/frames/frame_000003.png"))
	// mock clock never advances between frames, so every frame after the
	// first waits out the full 50ms interval
	assert.Equal(t, []time.Duration{50 * time.Millisecond, 50 * time.Millisecond, 50 * time.Millisecond}, clock.Sleeps())
	require.NoError(t, e.Close())
}

func TestRender_DoesNotChangeResults(t *testing.T) {
	run := func(mode string) []StepResult {
		cfg := ringConfig()
		cfg.RenderMode = ptr(mode)
		cfg.FrameDir = ptr("/frames")
		cfg.RenderFPS = ptr(0)
		e := newRingEnv(t, cfg)
		_, _, err := e.Reset(ptr(int64(21)))
		require.NoError(t, err)

		var out []StepResult
		for i := 0; i < 5; i++ {
			res, err := e.Step(DiscreteAction(i % 3))
			require.NoError(t, err)
			delete(res.Info, "episode_id")
			out = append(out, res)
		}
		return out
	}

	assert.Equal(t, run(config.RenderNone), run(config.RenderFrames))
}
