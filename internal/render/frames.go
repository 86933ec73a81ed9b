package render

import (
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"github.com/banshee-data/linefollower/internal/fsutil"
	"github.com/banshee-data/linefollower/internal/timeutil"
)

// FrameWriter saves rendered frames as numbered PNG files, pacing writes to
// a target frame rate.
type FrameWriter struct {
	fs      fsutil.FileSystem
	dir     string
	limiter *timeutil.Limiter
	next    int
}

// NewFrameWriter creates dir and returns a writer into it. fps <= 0 writes
// as fast as frames arrive.
func NewFrameWriter(fsys fsutil.FileSystem, dir string, fps int, clock timeutil.Clock) (*FrameWriter, error) {
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create frame dir: %w", err)
	}
	return &FrameWriter{
		fs:      fsys,
		dir:     dir,
		limiter: timeutil.NewLimiter(clock, fps),
	}, nil
}

// Write encodes img as the next frame and returns its path.
func (w *FrameWriter) Write(img image.Image) (string, error) {
	w.limiter.Tick()

	path := filepath.Join(w.dir, fmt.Sprintf("frame_%06d.png", w.next))
	f, err := w.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create frame: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to encode frame: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write frame: %w", err)
	}
	w.next++
	return path, nil
}

// Count returns the number of frames written.
func (w *FrameWriter) Count() int { return w.next }
