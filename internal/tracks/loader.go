package tracks

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/linefollower/internal/fsutil"
	"github.com/banshee-data/linefollower/internal/monitoring"
	"github.com/banshee-data/linefollower/internal/security"
	"github.com/banshee-data/linefollower/internal/trackmap"
)

// ErrTrackNotFound is returned when no search folder holds both files of a
// track.
var ErrTrackNotFound = errors.New("track not found")

// Track is a loaded track: the occupancy map, the source image for drawing,
// and the subsampled waypoint ring in image coordinates.
type Track struct {
	Name         string
	ImagePath    string
	WaypointPath string
	Map          *trackmap.Map
	Image        image.Image
	Waypoints    []r2.Vec
}

// Loader resolves track names against an ordered list of folders.
type Loader struct {
	fs          fsutil.FileSystem
	userFolders []string
	defaultDirs []string
	stride      int
}

// NewLoader returns a loader that searches defaultDirs after any user
// folders added later.
func NewLoader(fsys fsutil.FileSystem, defaultDirs ...string) *Loader {
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	return &Loader{
		fs:          fsys,
		defaultDirs: append([]string(nil), defaultDirs...),
		stride:      DefaultStride,
	}
}

// AddFolder registers a user folder ahead of every folder added before it.
func (l *Loader) AddFolder(dir string) {
	l.userFolders = append([]string{dir}, l.userFolders...)
}

// SetStride changes the waypoint subsampling stride.
func (l *Loader) SetStride(stride int) {
	if stride < 1 {
		stride = 1
	}
	l.stride = stride
}

// SearchPath returns the folders in the order they are searched.
func (l *Loader) SearchPath() []string {
	out := make([]string, 0, len(l.userFolders)+len(l.defaultDirs))
	out = append(out, l.userFolders...)
	return append(out, l.defaultDirs...)
}

// Resolve finds the first folder holding the track image and a waypoint
// file. The .npy waypoint file is preferred over .txt.
func (l *Loader) Resolve(name string) (imagePath, waypointPath string, err error) {
	if err := security.ValidateName(name); err != nil {
		return "", "", fmt.Errorf("track name: %w", err)
	}
	search := l.SearchPath()
	for _, dir := range search {
		img := filepath.Join(dir, name+".png")
		if !l.fs.Exists(img) {
			continue
		}
		for _, ext := range []string{".npy", ".txt"} {
			wp := filepath.Join(dir, name+"_waypoints"+ext)
			if l.fs.Exists(wp) {
				return img, wp, nil
			}
		}
	}
	return "", "", fmt.Errorf("%w: %q in user folders or default tracks %v", ErrTrackNotFound, name, search)
}

// Load resolves and reads a track.
func (l *Loader) Load(name string) (*Track, error) {
	imgPath, wpPath, err := l.Resolve(name)
	if err != nil {
		return nil, err
	}

	f, err := l.fs.Open(imgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open track image: %w", err)
	}
	m, img, err := trackmap.DecodePNG(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("track %q: %w", name, err)
	}

	raw, err := l.readWaypoints(wpPath)
	if err != nil {
		return nil, fmt.Errorf("track %q: %w", name, err)
	}
	wps := Subsample(raw, l.stride)
	if len(wps) < 2 {
		return nil, fmt.Errorf("track %q: need at least 2 waypoints after subsampling, got %d", name, len(wps))
	}

	monitoring.Logf("tracks: loaded %q (%dx%d, %d/%d waypoints) from %s",
		name, m.Width(), m.Height(), len(wps), len(raw), filepath.Dir(imgPath))

	return &Track{
		Name:         name,
		ImagePath:    imgPath,
		WaypointPath: wpPath,
		Map:          m,
		Image:        img,
		Waypoints:    wps,
	}, nil
}

func (l *Loader) readWaypoints(path string) ([]r2.Vec, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open waypoints: %w", err)
	}
	defer f.Close()

	if filepath.Ext(path) == ".npy" {
		return ReadWaypointsNPY(f)
	}
	return ReadWaypointsText(f)
}
