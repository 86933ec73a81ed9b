package env

import (
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/linefollower/internal/config"
	"github.com/banshee-data/linefollower/internal/fsutil"
	"github.com/banshee-data/linefollower/internal/monitoring"
	"github.com/banshee-data/linefollower/internal/render"
	"github.com/banshee-data/linefollower/internal/reward"
	"github.com/banshee-data/linefollower/internal/timeutil"
	"github.com/banshee-data/linefollower/internal/tracks"
	"github.com/banshee-data/linefollower/internal/vehicle"
)

// TickSeconds is the simulated time covered by one Step.
const TickSeconds = 0.05

// spawnOffset is how far ahead of the spawn waypoint the reward head starts,
// so the vehicle cannot claim anything just by spawning.
const spawnOffset = 2

// ErrNotReset is returned by Step and Render before the first Reset.
var ErrNotReset = errors.New("environment must be reset before use")

// Observation is the sensor reading vector in sensor layout order.
type Observation []bool

// Ints returns the observation as 0/1 values.
func (o Observation) Ints() []int {
	out := make([]int, len(o))
	for i, v := range o {
		if v {
			out[i] = 1
		}
	}
	return out
}

// Vector returns the observation as a 0/1 gonum vector.
func (o Observation) Vector() *mat.VecDense {
	data := make([]float64, len(o))
	for i, v := range o {
		if v {
			data[i] = 1
		}
	}
	return mat.NewVecDense(len(data), data)
}

// Info carries auxiliary episode data. It never affects the simulation.
type Info map[string]any

// StepResult is the outcome of one Step.
type StepResult struct {
	Observation Observation
	Reward      int
	Terminated  bool // always false: episodes have no goal state
	Truncated   bool
	Info        Info
}

// Option configures an Env.
type Option func(*Env)

// WithFileSystem sets the filesystem used for tracks and frames.
func WithFileSystem(fsys fsutil.FileSystem) Option {
	return func(e *Env) { e.fs = fsys }
}

// WithRand sets the random source used for every reset draw.
func WithRand(rng *rand.Rand) Option {
	return func(e *Env) { e.rng = rng }
}

// WithClock sets the clock that paces frame output.
func WithClock(clock timeutil.Clock) Option {
	return func(e *Env) { e.clock = clock }
}

// Env is the line-follower environment.
type Env struct {
	grid        [2]int
	trackName   string
	maxSteps    int
	hitbox      float64
	reverseProb float64
	renderMode  string
	renderFPS   int
	frameDir    string
	decoder     decoder

	fs     fsutil.FileSystem
	clock  timeutil.Clock
	rng    *rand.Rand
	loader *tracks.Loader

	track     *tracks.Track
	car       *vehicle.Vehicle
	tracker   *reward.Tracker
	steps     int
	episodeID uuid.UUID
	lastObs   Observation

	renderer *render.Context
	frames   *render.FrameWriter
}

// New builds an environment from cfg. A nil cfg uses defaults.
func New(cfg *config.EnvConfig, opts ...Option) (*Env, error) {
	if cfg == nil {
		cfg = config.EmptyEnvConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	e := &Env{
		grid:        cfg.GetSensorGrid(),
		trackName:   cfg.GetTrack(),
		maxSteps:    cfg.GetMaxSteps(),
		hitbox:      cfg.GetHitbox(),
		reverseProb: cfg.GetReverseProbability(),
		renderMode:  cfg.GetRenderMode(),
		renderFPS:   cfg.GetRenderFPS(),
		frameDir:    cfg.GetFrameDir(),
	}
	if cfg.GetActionMode() == config.ActionContinuous {
		e.decoder = clipDecoder{bound: cfg.GetActionBound()}
	} else {
		e.decoder = presetDecoder{}
	}

	for _, opt := range opts {
		opt(e)
	}
	if e.fs == nil {
		e.fs = fsutil.OSFileSystem{}
	}
	if e.clock == nil {
		e.clock = timeutil.RealClock{}
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	e.loader = tracks.NewLoader(e.fs, cfg.GetTrackDirs()...)
	e.loader.SetStride(cfg.GetWaypointStride())
	return e, nil
}

// AddTrackFolder searches dir for tracks ahead of every folder added before
// it and ahead of the configured track directories.
func (e *Env) AddTrackFolder(dir string) {
	e.loader.AddFolder(dir)
	e.track = nil
}

// ObservationSpace describes observations.
func (e *Env) ObservationSpace() ObservationSpace {
	return ObservationSpace{N: e.grid[0] * e.grid[1]}
}

// ActionSpace describes accepted actions.
func (e *Env) ActionSpace() ActionSpace { return e.decoder.space() }

// MaxSteps returns the truncation budget.
func (e *Env) MaxSteps() int { return e.maxSteps }

// Steps returns the number of steps taken in the current episode.
func (e *Env) Steps() int { return e.steps }

// Pose returns the current vehicle pose. ok is false before Reset.
func (e *Env) Pose() (pose vehicle.Pose, ok bool) {
	if e.car == nil {
		return vehicle.Pose{}, false
	}
	return e.car.Pose(), true
}

// PendingWaypoints returns the waypoint ring in claim order, image
// coordinates.
func (e *Env) PendingWaypoints() []r2.Vec {
	if e.tracker == nil {
		return nil
	}
	return e.tracker.Pending()
}

// Reset starts a new episode. A non-nil seed reseeds the random source, so
// both the direction flip and the spawn waypoint are reproducible.
func (e *Env) Reset(seed *int64) (Observation, Info, error) {
	if seed != nil {
		e.rng = rand.New(rand.NewPCG(uint64(*seed), 0))
	}

	tr, err := e.loadTrack()
	if err != nil {
		return nil, nil, err
	}

	wps := tr.Waypoints
	reversed := e.rng.Float64() < e.reverseProb
	if reversed {
		wps = reward.Reverse(wps)
	}

	n := len(wps)
	start := e.rng.IntN(n - 1)
	here, next := wps[start], wps[(start+1)%n]
	d := r2.Sub(next, here)
	// waypoints are y-down, the vehicle heading is y-up
	heading := math.Atan2(-d.Y, d.X)

	rows, cols := e.grid[0], e.grid[1]
	e.car = vehicle.New(rows, cols, vehicle.Pose{
		Position: tr.Map.FlipY(here),
		Heading:  heading,
	})
	e.tracker = reward.NewTracker(
		reward.Rotate(wps, (start+spawnOffset)%n),
		e.hitbox,
		float64(tr.Map.Height()),
	)
	e.steps = 0
	e.episodeID = uuid.New()

	obs := e.observe()
	monitoring.Logf("env: reset episode=%s track=%q start=%d/%d reversed=%t heading=%.3f",
		e.episodeID, tr.Name, start, n, reversed, heading)

	if err := e.writeFrame(); err != nil {
		return nil, nil, err
	}

	info := e.info()
	info["start_index"] = start
	info["reversed"] = reversed
	return obs, info, nil
}

// Step advances the simulation by one tick.
func (e *Env) Step(a Action) (StepResult, error) {
	if e.car == nil {
		return StepResult{}, ErrNotReset
	}
	left, right, err := e.decoder.decode(a)
	if err != nil {
		return StepResult{}, err
	}

	pose := e.car.Move(left, right, TickSeconds)
	obs := e.observe()
	r := e.tracker.Claim(pose.Position)
	e.steps++

	truncated := e.steps > e.maxSteps
	if e.steps == e.maxSteps+1 {
		monitoring.Logf("env: episode=%s truncated after %d steps", e.episodeID, e.steps)
	}

	if err := e.writeFrame(); err != nil {
		return StepResult{}, err
	}

	return StepResult{
		Observation: obs,
		Reward:      r,
		Terminated:  false,
		Truncated:   truncated,
		Info:        e.info(),
	}, nil
}

// Render draws the current state. It returns nil when rendering is
// disabled. Rendering never changes simulation state.
func (e *Env) Render() (image.Image, error) {
	if e.renderMode == config.RenderNone {
		return nil, nil
	}
	if e.car == nil {
		return nil, ErrNotReset
	}
	img, err := e.draw()
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return img, nil
}

// Close releases the rendering context, if one was created.
func (e *Env) Close() error {
	e.frames = nil
	if e.renderer == nil {
		return nil
	}
	err := e.renderer.Close()
	e.renderer = nil
	return err
}

func (e *Env) loadTrack() (*tracks.Track, error) {
	if e.track != nil && e.track.Name == e.trackName {
		return e.track, nil
	}
	tr, err := e.loader.Load(e.trackName)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	e.track = tr
	return tr, nil
}

func (e *Env) observe() Observation {
	e.lastObs = Observation(e.track.Map.SampleAll(e.car.WorldSensors()))
	return e.lastObs
}

func (e *Env) info() Info {
	return Info{
		"episode_id": e.episodeID.String(),
		"step":       e.steps,
	}
}

func (e *Env) draw() (*image.RGBA, error) {
	if e.renderer == nil {
		e.renderer = render.NewContext(e.track.Map.Width(), e.track.Map.Height())
	}
	pose := e.car.Pose()
	return e.renderer.Draw(render.Scene{
		Track:     e.track.Image,
		Corners:   e.car.WorldCorners(),
		Sensors:   e.car.WorldSensors(),
		Values:    e.lastObs,
		Waypoints: e.tracker.Pending(),
		Position:  pose.Position,
		Hitbox:    e.tracker.Hitbox(),
	})
}

// writeFrame draws and saves a frame in frames mode; other modes skip it.
func (e *Env) writeFrame() error {
	if e.renderMode != config.RenderFrames {
		return nil
	}
	img, err := e.draw()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if e.frames == nil {
		fw, err := render.NewFrameWriter(e.fs, e.frameDir, e.renderFPS, e.clock)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		e.frames = fw
	}
	if _, err := e.frames.Write(img); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
