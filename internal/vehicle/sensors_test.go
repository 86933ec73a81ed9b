package vehicle

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestSensorLayout_Count(t *testing.T) {
	for _, grid := range [][2]int{{1, 1}, {4, 6}, {6, 4}, {3, 5}, {2, 9}} {
		g := NewGeometry(grid[0], grid[1])
		got := SensorLayout(g.Rows, g.Cols, g.Width, g.Height)
		assert.Len(t, got, grid[0]*grid[1], "grid %v", grid)
	}
	assert.Empty(t, SensorLayout(0, 3, 0, 60))
}

func TestSensorLayout_Order(t *testing.T) {
	got := SensorLayout(2, 3, 40, 60)
	want := []r2.Vec{
		{X: -10, Y: 20}, {X: 10, Y: 20},
		{X: -10, Y: 0}, {X: 10, Y: 0},
		{X: -10, Y: -20}, {X: 10, Y: -20},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SensorLayout mismatch (-want +got):\n%s", diff)
	}
}

func TestSensorLayout_CentredOnOrigin(t *testing.T) {
	g := NewGeometry(4, 6)
	var sum r2.Vec
	for _, p := range SensorLayout(g.Rows, g.Cols, g.Width, g.Height) {
		sum = r2.Add(sum, p)
	}
	assert.InDelta(t, 0, sum.X, eps)
	assert.InDelta(t, 0, sum.Y, eps)
}

func TestWorldPositions_HeadingUpIsIdentity(t *testing.T) {
	offsets := SensorLayout(4, 6, 80, 120)
	pose := Pose{Position: r2.Vec{X: 300, Y: 200}, Heading: math.Pi / 2}

	got := WorldPositions(offsets, pose)

	require.Len(t, got, len(offsets))
	want := make([]r2.Vec, len(offsets))
	for i, o := range offsets {
		want[i] = r2.Add(o, pose.Position)
	}
	approx := cmpopts.EquateApprox(0, 1e-9)
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("WorldPositions mismatch (-want +got):\n%s", diff)
	}
}

func TestWorldPositions_FrontFollowsHeading(t *testing.T) {
	front := []r2.Vec{{X: 0, Y: 10}}
	for _, heading := range []float64{0, 0.7, math.Pi, -2.1} {
		got := WorldPositions(front, Pose{Heading: heading})
		require.Len(t, got, 1)
		assert.InDelta(t, 10*math.Cos(heading), got[0].X, eps, "heading %v", heading)
		assert.InDelta(t, 10*math.Sin(heading), got[0].Y, eps, "heading %v", heading)
	}
}

func TestWorldPositions_PreservesCountAndDistances(t *testing.T) {
	v := New(3, 5, Pose{Position: r2.Vec{X: 12, Y: -7}, Heading: 1.3})
	sensors := v.WorldSensors()
	layout := SensorLayout(3, 5, 60, 100)
	require.Len(t, sensors, 15)
	for i := range sensors {
		want := r2.Norm(layout[i])
		got := r2.Norm(r2.Sub(sensors[i], v.Pose().Position))
		assert.InDelta(t, want, got, 1e-9, "sensor %d", i)
	}

	corners := v.WorldCorners()
	assert.Len(t, corners, 4)
	assert.Nil(t, WorldPositions(nil, v.Pose()))
}
