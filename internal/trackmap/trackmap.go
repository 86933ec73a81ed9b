// Package trackmap converts a track image into a boolean occupancy grid and
// answers point-sampling queries against it.
package trackmap

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"gonum.org/v1/gonum/spatial/r2"
)

// Map is an immutable occupancy grid with one cell per source pixel.
// A true cell is "on track".
type Map struct {
	width, height int
	cells         []bool // row-major, row 0 is the top of the image
}

// FromImage builds a Map from decoded pixels. The grey level of a pixel is
// the unweighted mean of its red, green, blue and alpha channels, so
// partially transparent pixels darken the grey level. Any pixel whose grey
// level is below full white is on track.
func FromImage(img image.Image) *Map {
	b := img.Bounds()
	m := &Map{
		width:  b.Dx(),
		height: b.Dy(),
		cells:  make([]bool, b.Dx()*b.Dy()),
	}

	const white = 4 * 0xffff
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
			sum := uint32(c.R) + uint32(c.G) + uint32(c.B) + uint32(c.A)
			m.cells[(y-b.Min.Y)*m.width+(x-b.Min.X)] = sum < white
		}
	}
	return m
}

// DecodePNG reads a PNG stream into a Map.
func DecodePNG(r io.Reader) (*Map, image.Image, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode track image: %w", err)
	}
	return FromImage(img), img, nil
}

// Width returns the grid width in cells.
func (m *Map) Width() int { return m.width }

// Height returns the grid height in cells.
func (m *Map) Height() int { return m.height }

// At reports the cell at column x, row y in image coordinates. Indices
// outside the grid read as false.
func (m *Map) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return m.cells[y*m.width+x]
}

// Sample reads the cell under a point given in simulation coordinates
// (y up). The point is flipped into image coordinates and truncated toward
// zero. Points that land outside the grid read as false; sensors routinely
// swing off the image when the vehicle turns near an edge.
func (m *Map) Sample(p r2.Vec) bool {
	col := int(p.X)
	row := int(float64(m.height) - p.Y)
	return m.At(col, row)
}

// SampleAll samples each point in order.
func (m *Map) SampleAll(pts []r2.Vec) []bool {
	out := make([]bool, len(pts))
	for i, p := range pts {
		out[i] = m.Sample(p)
	}
	return out
}

// FlipY converts a point between simulation coordinates (y up) and image
// coordinates (y down). The flip is its own inverse.
func (m *Map) FlipY(p r2.Vec) r2.Vec {
	return r2.Vec{X: p.X, Y: float64(m.height) - p.Y}
}
