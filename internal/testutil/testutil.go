// Package testutil provides shared test utilities and fixtures.
//
// Track fixtures are generated rather than checked in, so tests can write
// them into an in-memory filesystem.
package testutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

// Ring is an annular black track on a white background.
type Ring struct {
	Width, Height int
	Centre        r2.Vec
	Radius        float64
	HalfWidth     float64
}

// DefaultRing is an 800x500 track with a 150px radius and a 30px wide line.
var DefaultRing = Ring{Width: 800, Height: 500, Centre: r2.Vec{X: 400, Y: 250}, Radius: 150, HalfWidth: 15}

// OnLine reports whether image point p is on the line.
func (r Ring) OnLine(p r2.Vec) bool {
	return math.Abs(r2.Norm(r2.Sub(p, r.Centre))-r.Radius) < r.HalfWidth
}

// Image draws the ring.
func (r Ring) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if r.OnLine(r2.Vec{X: float64(x), Y: float64(y)}) {
				c = color.NRGBA{A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// Waypoints returns n image-space points evenly spaced on the ring centreline.
func (r Ring) Waypoints(n int) []r2.Vec {
	out := make([]r2.Vec, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = r2.Vec{X: r.Centre.X + r.Radius*math.Cos(a), Y: r.Centre.Y + r.Radius*math.Sin(a)}
	}
	return out
}

// EncodePNG encodes img, failing the test on error.
func EncodePNG(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

// WaypointsText formats points the way np.savetxt does.
func WaypointsText(pts []r2.Vec) []byte {
	var buf bytes.Buffer
	for _, p := range pts {
		fmt.Fprintf(&buf, "%.18e %.18e\n", p.X, p.Y)
	}
	return buf.Bytes()
}
