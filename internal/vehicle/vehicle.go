package vehicle

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// SpeedScale multiplies both wheel speeds before the motion update.
	// It is a tuning constant, not a unit conversion.
	SpeedScale = 100.0

	// CellSize is the body length contributed by each sensor row or column.
	CellSize = 20.0
)

// Default construction values used when the caller does not supply a pose.
var (
	DefaultSensorGrid = [2]int{4, 6}
	DefaultPose       = Pose{Position: r2.Vec{X: 100, Y: 100}, Heading: math.Pi / 8}
)

// Pose is the vehicle position and heading in simulation coordinates.
type Pose struct {
	Position r2.Vec
	Heading  float64 // radians, counter-clockwise from +x
}

// Geometry is fixed at construction and defines both the body outline and
// the sensor lattice.
type Geometry struct {
	Rows, Cols int
	Width      float64 // Rows * CellSize, also the distance between wheels
	Height     float64 // Cols * CellSize
}

// NewGeometry derives the body footprint from a (rows, cols) sensor grid.
func NewGeometry(rows, cols int) Geometry {
	return Geometry{
		Rows:   rows,
		Cols:   cols,
		Width:  float64(rows) * CellSize,
		Height: float64(cols) * CellSize,
	}
}

// SensorCount returns rows*cols.
func (g Geometry) SensorCount() int { return g.Rows * g.Cols }

// Corners returns the body outline in the vehicle frame, centred at the
// origin: bottom left, bottom right, top right, top left.
func (g Geometry) Corners() [4]r2.Vec {
	w, h := g.Width/2, g.Height/2
	return [4]r2.Vec{
		{X: -w, Y: -h},
		{X: w, Y: -h},
		{X: w, Y: h},
		{X: -w, Y: h},
	}
}

// Vehicle owns a pose and the precomputed sensor layout. Only Move and
// Reset mutate the pose.
type Vehicle struct {
	geom    Geometry
	initial Pose
	pose    Pose
	sensors []r2.Vec
}

// New builds a vehicle with the given sensor grid and initial pose.
func New(rows, cols int, initial Pose) *Vehicle {
	geom := NewGeometry(rows, cols)
	return &Vehicle{
		geom:    geom,
		initial: initial,
		pose:    initial,
		sensors: SensorLayout(rows, cols, geom.Width, geom.Height),
	}
}

// Geometry returns the fixed body geometry.
func (v *Vehicle) Geometry() Geometry { return v.geom }

// Pose returns the current pose.
func (v *Vehicle) Pose() Pose { return v.pose }

// Reset restores the pose the vehicle was constructed with.
func (v *Vehicle) Reset() { v.pose = v.initial }

// TrackWidth is the distance between the wheels, equal to the body width.
func (v *Vehicle) TrackWidth() float64 { return v.geom.Width }

// Move advances the pose by dt given left and right wheel speeds and
// returns the new pose.
//
// For unequal speeds the translation is applied along the midpoint heading
// θ+Δθ/2 instead of following the true arc. This first-order approximation
// is only accurate while the distance moved is small relative to the
// turning radius.
func (v *Vehicle) Move(left, right, dt float64) Pose {
	vl := left * SpeedScale
	vr := right * SpeedScale
	theta := v.pose.Heading

	if vl == vr {
		dist := vr * dt
		v.pose.Position = r2.Add(v.pose.Position, r2.Scale(dist, heading(theta)))
		return v.pose
	}

	omega := (vr - vl) / v.TrackWidth()
	dTheta := omega * dt
	dist := (vl + vr) * dt / 2

	v.pose.Position = r2.Add(v.pose.Position, r2.Scale(dist, heading(theta+dTheta/2)))
	v.pose.Heading = theta + dTheta
	return v.pose
}

// WorldSensors returns the world-space sensor positions for the current pose.
func (v *Vehicle) WorldSensors() []r2.Vec {
	return WorldPositions(v.sensors, v.pose)
}

// WorldCorners returns the world-space body outline for the current pose.
func (v *Vehicle) WorldCorners() []r2.Vec {
	c := v.geom.Corners()
	return WorldPositions(c[:], v.pose)
}

func heading(theta float64) r2.Vec {
	return r2.Vec{X: math.Cos(theta), Y: math.Sin(theta)}
}
