package tracks

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultStride keeps every 10th authored waypoint.
const DefaultStride = 10

// ReadWaypointsNPY decodes a NumPy (N, 2) float64 array.
func ReadWaypointsNPY(r io.Reader) ([]r2.Vec, error) {
	var m mat.Dense
	if err := npyio.Read(r, &m); err != nil {
		return nil, fmt.Errorf("failed to read npy waypoints: %w", err)
	}
	rows, cols := m.Dims()
	if cols != 2 {
		return nil, fmt.Errorf("waypoint array must have shape (N, 2), got (%d, %d)", rows, cols)
	}
	out := make([]r2.Vec, rows)
	for i := range out {
		out[i] = r2.Vec{X: m.At(i, 0), Y: m.At(i, 1)}
	}
	return out, nil
}

// ReadWaypointsText decodes one "x y" pair per line, as written by
// numpy.savetxt. Commas are accepted as separators; blank lines and lines
// starting with '#' are skipped.
func ReadWaypointsText(r io.Reader) ([]r2.Vec, error) {
	var out []r2.Vec
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected 2 values, got %d", line, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid x %q: %w", line, fields[0], err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid y %q: %w", line, fields[1], err)
		}
		out = append(out, r2.Vec{X: x, Y: y})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan waypoints: %w", err)
	}
	return out, nil
}

// Subsample keeps every stride-th waypoint starting with the first.
// A stride below 1 returns a copy of the input.
func Subsample(wps []r2.Vec, stride int) []r2.Vec {
	if stride < 1 {
		stride = 1
	}
	out := make([]r2.Vec, 0, (len(wps)+stride-1)/stride)
	for i := 0; i < len(wps); i += stride {
		out = append(out, wps[i])
	}
	return out
}
