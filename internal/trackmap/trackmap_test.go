package trackmap

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/linefollower/internal/testutil"
)

func whiteImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return img
}

func TestFromImage_Occupancy(t *testing.T) {
	cases := []struct {
		name string
		c    color.NRGBA
		want bool
	}{
		{"opaque white", color.NRGBA{255, 255, 255, 255}, false},
		{"black", color.NRGBA{0, 0, 0, 255}, true},
		{"light grey", color.NRGBA{254, 255, 255, 255}, true},
		{"white partial alpha", color.NRGBA{255, 255, 255, 200}, true},
		{"white transparent", color.NRGBA{255, 255, 255, 0}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			img := whiteImage(3, 2)
			img.SetNRGBA(1, 0, tc.c)
			m := FromImage(img)

			assert.Equal(t, tc.want, m.At(1, 0))
			assert.False(t, m.At(0, 0))
			assert.False(t, m.At(2, 1))
		})
	}
}

func TestFromImage_NonZeroOrigin(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 20, 14, 23))
	img.SetNRGBA(10, 20, color.NRGBA{255, 255, 255, 255})
	m := FromImage(img)

	assert.Equal(t, 4, m.Width())
	assert.Equal(t, 3, m.Height())
	assert.False(t, m.At(0, 0))
	// untouched pixels are transparent black
	assert.True(t, m.At(3, 2))
}

func TestSample_FlipsY(t *testing.T) {
	img := whiteImage(10, 8)
	img.SetNRGBA(3, 1, color.NRGBA{0, 0, 0, 255}) // image row 1
	m := FromImage(img)

	// row = int(8 - y) = 1  =>  y in (6, 7]
	assert.True(t, m.Sample(r2.Vec{X: 3.9, Y: 6.5}))
	assert.True(t, m.Sample(r2.Vec{X: 3.0, Y: 7.0}))
	assert.False(t, m.Sample(r2.Vec{X: 3.0, Y: 1.0}))
	assert.False(t, m.Sample(r2.Vec{X: 4.0, Y: 6.5}))
}

func TestSample_OutOfRange(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 800, 500)) // fully transparent, all on track
	m := FromImage(img)
	require.True(t, m.Sample(r2.Vec{X: 10, Y: 10}))

	// column -5, row 900
	assert.False(t, m.Sample(r2.Vec{X: -5, Y: 500 - 900}))
	// column 900, row -5
	assert.False(t, m.Sample(r2.Vec{X: 900, Y: 505}))

	far := []r2.Vec{
		{X: 1e9, Y: 1e9},
		{X: -1e9, Y: -1e9},
		{X: 800, Y: 250},
		{X: 400, Y: 0}, // row 500
		{X: -1.5, Y: 250},
	}
	for _, p := range far {
		assert.NotPanics(t, func() { m.Sample(p) })
		assert.False(t, m.Sample(p), "point %v", p)
	}
	// truncation toward zero keeps small negative offsets on the grid
	assert.True(t, m.Sample(r2.Vec{X: -0.5, Y: 250}))
}

func TestSampleAll_Order(t *testing.T) {
	img := whiteImage(4, 4)
	img.SetNRGBA(0, 3, color.NRGBA{0, 0, 0, 255})
	m := FromImage(img)

	got := m.SampleAll([]r2.Vec{{X: 0, Y: 1}, {X: 2, Y: 2}, {X: 0.5, Y: 0.5}, {X: -3, Y: 1}})
	assert.Equal(t, []bool{true, false, true, false}, got)
}

func TestDecodePNG(t *testing.T) {
	img := whiteImage(5, 5)
	img.SetNRGBA(2, 2, color.NRGBA{0, 0, 0, 255})
	m, decoded, err := DecodePNG(bytes.NewReader(testutil.EncodePNG(t, img)))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
	assert.True(t, m.At(2, 2))
	assert.False(t, m.At(1, 2))

	_, _, err = DecodePNG(bytes.NewReader([]byte("not a png")))
	assert.Error(t, err)
}

func TestFlipY(t *testing.T) {
	m := FromImage(whiteImage(800, 500))
	p := r2.Vec{X: 12, Y: 100}
	assert.Equal(t, r2.Vec{X: 12, Y: 400}, m.FlipY(p))
	assert.Equal(t, p, m.FlipY(m.FlipY(p)))
}
