package vehicle

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// SensorLayout returns rows*cols sensor offsets in the vehicle frame,
// centred on the origin. Offsets are spaced width/rows apart along x and
// height/cols apart along y.
//
// Order is row-major over the lattice: the outer loop walks the cols axis
// from the front (+y) to the back, the inner loop walks the rows axis from
// left (-x) to right. Observations are reported in this same order.
func SensorLayout(rows, cols int, width, height float64) []r2.Vec {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	dx := width / float64(rows)
	dy := height / float64(cols)
	cx := float64(rows-1) / 2
	cy := float64(cols-1) / 2

	out := make([]r2.Vec, 0, rows*cols)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			out = append(out, r2.Vec{
				X: (float64(j) - cx) * dx,
				Y: (cy - float64(i)) * dy,
			})
		}
	}
	return out
}

// rotation returns the 2x2 rotation matrix applied to vehicle-frame points.
// The body convention puts forward along +y, so the heading is offset by
// -π/2 before rotating.
func rotation(heading float64) *mat.Dense {
	theta := heading - math.Pi/2
	c, s := math.Cos(theta), math.Sin(theta)
	return mat.NewDense(2, 2, []float64{
		c, -s,
		s, c,
	})
}

// WorldPositions rotates vehicle-frame offsets by the pose heading and
// translates them by the pose position. Count and order are preserved.
func WorldPositions(offsets []r2.Vec, pose Pose) []r2.Vec {
	n := len(offsets)
	if n == 0 {
		return nil
	}

	pts := mat.NewDense(n, 2, nil)
	for i, o := range offsets {
		pts.Set(i, 0, o.X)
		pts.Set(i, 1, o.Y)
	}

	// (R · Pᵀ)ᵀ = P · Rᵀ
	var rotated mat.Dense
	rotated.Mul(pts, rotation(pose.Heading).T())

	out := make([]r2.Vec, n)
	for i := range out {
		out[i] = r2.Vec{
			X: rotated.At(i, 0) + pose.Position.X,
			Y: rotated.At(i, 1) + pose.Position.Y,
		}
	}
	return out
}
