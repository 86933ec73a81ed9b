package env

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/linefollower/internal/config"
	"github.com/banshee-data/linefollower/internal/fsutil"
	"github.com/banshee-data/linefollower/internal/monitoring"
	"github.com/banshee-data/linefollower/internal/testutil"
)

var ring = testutil.DefaultRing

const (
	trackW, trackH = 800, 500
	rawWaypoints   = 480 // 48 after subsampling, about 19.6px apart
)

func init() {
	monitoring.SetLogger(nil)
}

// ringWaypoints returns the authored (image space) waypoints of the ring.
func ringWaypoints(n int) []r2.Vec { return ring.Waypoints(n) }

// ringFS returns a filesystem holding the "ring" track under /tracks.
func ringFS(t *testing.T) *fsutil.MemoryFileSystem {
	t.Helper()
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/tracks/ring.png", testutil.EncodePNG(t, ring.Image()), 0o644))
	require.NoError(t, mfs.WriteFile("/tracks/ring_waypoints.txt", testutil.WaypointsText(ringWaypoints(rawWaypoints)), 0o644))
	return mfs
}

func ptr[T any](v T) *T { return &v }

// ringConfig returns a config for the ring track; mutate fields as needed.
func ringConfig() *config.EnvConfig {
	return &config.EnvConfig{
		Track:     ptr("ring"),
		TrackDirs: []string{"/tracks"},
	}
}

func newRingEnv(t *testing.T, cfg *config.EnvConfig, opts ...Option) *Env {
	t.Helper()
	opts = append([]Option{WithFileSystem(ringFS(t))}, opts...)
	e, err := New(cfg, opts...)
	require.NoError(t, err)
	return e
}
