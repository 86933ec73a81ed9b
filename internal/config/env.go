package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the canonical environment defaults file.
const DefaultConfigPath = "config/env.defaults.json"

// Action modes.
const (
	ActionDiscrete   = "discrete"
	ActionContinuous = "continuous"
)

// Render modes. The empty string disables rendering.
const (
	RenderNone     = ""
	RenderRGBArray = "rgb_array"
	RenderFrames   = "frames"
)

// EnvConfig is the environment configuration. Every field is optional; the
// Get* methods supply defaults for omitted fields, so partial files are safe.
type EnvConfig struct {
	// Episode params
	SensorGrid         *[2]int  `json:"sensor_grid,omitempty"` // [rows, cols]
	Track              *string  `json:"track,omitempty"`
	MaxSteps           *int     `json:"max_steps,omitempty"`
	Hitbox             *float64 `json:"hitbox,omitempty"`
	ReverseProbability *float64 `json:"reverse_probability,omitempty"`
	WaypointStride     *int     `json:"waypoint_stride,omitempty"`

	// Action params
	ActionMode  *string  `json:"action_mode,omitempty"`  // "discrete" or "continuous"
	ActionBound *float64 `json:"action_bound,omitempty"` // continuous clip bound

	// Track search folders, searched after user folders
	TrackDirs []string `json:"track_dirs,omitempty"`

	// Render params
	RenderMode *string `json:"render_mode,omitempty"`
	RenderFPS  *int    `json:"render_fps,omitempty"`
	FrameDir   *string `json:"frame_dir,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyEnvConfig returns an EnvConfig with all fields unset.
func EmptyEnvConfig() *EnvConfig {
	return &EnvConfig{}
}

// DefaultEnvConfig returns an EnvConfig with every field set to its default.
func DefaultEnvConfig() *EnvConfig {
	e := EmptyEnvConfig()
	grid := e.GetSensorGrid()
	return &EnvConfig{
		SensorGrid:         &grid,
		Track:              ptrString(e.GetTrack()),
		MaxSteps:           ptrInt(e.GetMaxSteps()),
		Hitbox:             ptrFloat64(e.GetHitbox()),
		ReverseProbability: ptrFloat64(e.GetReverseProbability()),
		WaypointStride:     ptrInt(e.GetWaypointStride()),
		ActionMode:         ptrString(e.GetActionMode()),
		ActionBound:        ptrFloat64(e.GetActionBound()),
		TrackDirs:          e.GetTrackDirs(),
		RenderMode:         ptrString(e.GetRenderMode()),
		RenderFPS:          ptrInt(e.GetRenderFPS()),
		FrameDir:           ptrString(e.GetFrameDir()),
	}
}

// LoadEnvConfig loads an EnvConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadEnvConfig(path string) (*EnvConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyEnvConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the values that are set.
func (c *EnvConfig) Validate() error {
	if c.SensorGrid != nil {
		if c.SensorGrid[0] < 1 || c.SensorGrid[1] < 1 {
			return fmt.Errorf("sensor_grid dimensions must be positive, got %v", *c.SensorGrid)
		}
	}
	if c.Track != nil && *c.Track == "" {
		return fmt.Errorf("track must not be empty")
	}
	if c.MaxSteps != nil && *c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be non-negative, got %d", *c.MaxSteps)
	}
	if c.Hitbox != nil && *c.Hitbox <= 0 {
		return fmt.Errorf("hitbox must be positive, got %f", *c.Hitbox)
	}
	if c.ReverseProbability != nil {
		if p := *c.ReverseProbability; p < 0 || p > 1 {
			return fmt.Errorf("reverse_probability must be between 0 and 1, got %f", p)
		}
	}
	if c.WaypointStride != nil && *c.WaypointStride < 1 {
		return fmt.Errorf("waypoint_stride must be at least 1, got %d", *c.WaypointStride)
	}
	if c.ActionMode != nil {
		switch *c.ActionMode {
		case ActionDiscrete, ActionContinuous:
		default:
			return fmt.Errorf("unknown action_mode %q", *c.ActionMode)
		}
	}
	if c.ActionBound != nil && *c.ActionBound <= 0 {
		return fmt.Errorf("action_bound must be positive, got %f", *c.ActionBound)
	}
	if c.RenderMode != nil {
		switch *c.RenderMode {
		case RenderNone, RenderRGBArray, RenderFrames:
		default:
			return fmt.Errorf("unknown render_mode %q", *c.RenderMode)
		}
	}
	if c.RenderFPS != nil && *c.RenderFPS < 0 {
		return fmt.Errorf("render_fps must be non-negative, got %d", *c.RenderFPS)
	}
	return nil
}

// GetSensorGrid returns the sensor_grid value or the default (4, 6).
func (c *EnvConfig) GetSensorGrid() [2]int {
	if c.SensorGrid == nil {
		return [2]int{4, 6}
	}
	return *c.SensorGrid
}

// GetTrack returns the track value or the default.
func (c *EnvConfig) GetTrack() string {
	if c.Track == nil {
		return "path"
	}
	return *c.Track
}

// GetMaxSteps returns the max_steps value or the default.
func (c *EnvConfig) GetMaxSteps() int {
	if c.MaxSteps == nil {
		return 200
	}
	return *c.MaxSteps
}

// GetHitbox returns the hitbox value or the default.
func (c *EnvConfig) GetHitbox() float64 {
	if c.Hitbox == nil {
		return 20
	}
	return *c.Hitbox
}

// GetReverseProbability returns the reverse_probability value or the default.
func (c *EnvConfig) GetReverseProbability() float64 {
	if c.ReverseProbability == nil {
		return 0.5
	}
	return *c.ReverseProbability
}

// GetWaypointStride returns the waypoint_stride value or the default.
func (c *EnvConfig) GetWaypointStride() int {
	if c.WaypointStride == nil {
		return 10
	}
	return *c.WaypointStride
}

// GetActionMode returns the action_mode value or the default.
func (c *EnvConfig) GetActionMode() string {
	if c.ActionMode == nil {
		return ActionDiscrete
	}
	return *c.ActionMode
}

// GetActionBound returns the action_bound value or the default.
func (c *EnvConfig) GetActionBound() float64 {
	if c.ActionBound == nil {
		return 5.0
	}
	return *c.ActionBound
}

// GetTrackDirs returns the track_dirs value or the default.
func (c *EnvConfig) GetTrackDirs() []string {
	if len(c.TrackDirs) == 0 {
		return []string{"tracks"}
	}
	return append([]string(nil), c.TrackDirs...)
}

// GetRenderMode returns the render_mode value or the default (disabled).
func (c *EnvConfig) GetRenderMode() string {
	if c.RenderMode == nil {
		return RenderNone
	}
	return *c.RenderMode
}

// GetRenderFPS returns the render_fps value or the default.
func (c *EnvConfig) GetRenderFPS() int {
	if c.RenderFPS == nil {
		return 30
	}
	return *c.RenderFPS
}

// GetFrameDir returns the frame_dir value or the default.
func (c *EnvConfig) GetFrameDir() string {
	if c.FrameDir == nil {
		return "frames"
	}
	return *c.FrameDir
}
