// Package render draws a read-only snapshot of the simulation: track image,
// pending waypoints, vehicle body, front marker and sensors. Nothing here
// feeds back into simulation state; skipping rendering changes no result.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	imgdraw "image/draw"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	// ErrSensorCountMismatch is returned when sensor values are supplied
	// for drawing but do not pair one-to-one with sensor positions.
	ErrSensorCountMismatch = errors.New("number of sensors and number of values must be the same")

	// ErrClosed is returned by Draw after Close.
	ErrClosed = errors.New("render context closed")
)

var (
	bodyColor   = color.RGBA{B: 255, A: 255}
	activeColor = color.RGBA{R: 255, A: 255}
	claimColor  = color.RGBA{G: 255, A: 255}
	background  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

const dpi = 72 // one point per pixel

// Scene is everything needed to draw one frame. Positions are simulation
// coordinates (y up) except Waypoints, which stay in image coordinates as
// authored.
type Scene struct {
	Track     image.Image // optional background
	Corners   []r2.Vec
	Sensors   []r2.Vec
	Values    []bool // optional, paired with Sensors
	Waypoints []r2.Vec
	Position  r2.Vec
	Hitbox    float64
}

// Context owns the drawing surface size. It is created lazily by the
// environment on the first render call and released by Close.
type Context struct {
	width, height int
	frames        int
	closed        bool
}

// NewContext returns a context that draws width x height pixel frames.
func NewContext(width, height int) *Context {
	return &Context{width: width, height: height}
}

// Frames returns how many frames have been drawn.
func (c *Context) Frames() int { return c.frames }

// Close releases the context. Further Draw calls fail.
func (c *Context) Close() error {
	c.closed = true
	return nil
}

// Draw renders a scene into a new RGBA image.
func (c *Context) Draw(s Scene) (*image.RGBA, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if s.Values != nil && len(s.Values) != len(s.Sensors) {
		return nil, fmt.Errorf("%w: got %d sensors and %d values", ErrSensorCountMismatch, len(s.Sensors), len(s.Values))
	}

	p := plot.New()
	p.BackgroundColor = background
	p.HideAxes()

	if s.Track != nil {
		p.Add(plotter.NewImage(s.Track, 0, 0, float64(c.width), float64(c.height)))
	}
	if err := c.addWaypoints(p, s); err != nil {
		return nil, err
	}
	if err := addVehicle(p, s); err != nil {
		return nil, err
	}

	// Fix the view after adding plotters; Add widens the axes to fit data.
	p.X.Min, p.X.Max = 0, float64(c.width)
	p.Y.Min, p.Y.Max = 0, float64(c.height)
	p.X.Padding, p.Y.Padding = 0, 0

	canvas := vgimg.NewWith(
		vgimg.UseWH(vg.Length(c.width), vg.Length(c.height)),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(canvas))
	c.frames++

	src := canvas.Image()
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba, nil
	}
	out := image.NewRGBA(src.Bounds())
	imgdraw.Draw(out, out.Bounds(), src, src.Bounds().Min, imgdraw.Src)
	return out, nil
}

// WaypointColor fades from yellow to black over the first half of the
// pending queue; i is 1-based.
func WaypointColor(i, n int) color.RGBA {
	if n <= 0 {
		return color.RGBA{A: 255}
	}
	t := float64(i) / float64(n)
	f := math.Max(1-2*t, 0)
	return color.RGBA{R: uint8(255 * f), G: uint8(255 * f), A: 255}
}

func (c *Context) addWaypoints(p *plot.Plot, s Scene) error {
	n := len(s.Waypoints)
	if n == 0 {
		return nil
	}
	xys := make(plotter.XYs, n)
	for i, wp := range s.Waypoints {
		xys[i] = plotter.XY{X: wp.X, Y: float64(c.height) - wp.Y}
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("waypoints: %w", err)
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  WaypointColor(i+1, n),
			Radius: vg.Points(4),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(sc)
	return nil
}

func addVehicle(p *plot.Plot, s Scene) error {
	if s.Hitbox > 0 {
		claim, err := plotter.NewScatter(plotter.XYs{{X: s.Position.X, Y: s.Position.Y}})
		if err != nil {
			return fmt.Errorf("claim radius: %w", err)
		}
		claim.GlyphStyle = draw.GlyphStyle{Color: claimColor, Radius: vg.Points(s.Hitbox), Shape: draw.RingGlyph{}}
		p.Add(claim)
	}

	if len(s.Corners) == 4 {
		body, err := plotter.NewPolygon(toXYs(s.Corners))
		if err != nil {
			return fmt.Errorf("body: %w", err)
		}
		body.Color = nil
		body.LineStyle.Color = bodyColor
		body.LineStyle.Width = vg.Points(2)
		p.Add(body)

		// front marker: body centre to the middle of the front edge
		centre := mean(s.Corners)
		front := mean(s.Corners[2:])
		marker, err := plotter.NewLine(plotter.XYs{{X: centre.X, Y: centre.Y}, {X: front.X, Y: front.Y}})
		if err != nil {
			return fmt.Errorf("front marker: %w", err)
		}
		marker.LineStyle.Color = activeColor
		marker.LineStyle.Width = vg.Points(2)
		p.Add(marker)
	}

	if len(s.Sensors) == 0 {
		return nil
	}
	sensors, err := plotter.NewScatter(toXYs(s.Sensors))
	if err != nil {
		return fmt.Errorf("sensors: %w", err)
	}
	sensors.GlyphStyle = draw.GlyphStyle{Color: bodyColor, Radius: vg.Points(4), Shape: draw.RingGlyph{}}
	p.Add(sensors)

	var active plotter.XYs
	for i, on := range s.Values {
		if on {
			active = append(active, plotter.XY{X: s.Sensors[i].X, Y: s.Sensors[i].Y})
		}
	}
	if len(active) > 0 {
		hits, err := plotter.NewScatter(active)
		if err != nil {
			return fmt.Errorf("active sensors: %w", err)
		}
		hits.GlyphStyle = draw.GlyphStyle{Color: activeColor, Radius: vg.Points(4), Shape: draw.CircleGlyph{}}
		p.Add(hits)
	}
	return nil
}

func toXYs(pts []r2.Vec) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		out[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return out
}

func mean(pts []r2.Vec) r2.Vec {
	var sum r2.Vec
	for _, pt := range pts {
		sum = r2.Add(sum, pt)
	}
	return r2.Scale(1/float64(len(pts)), sum)
}
