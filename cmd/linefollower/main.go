// Command linefollower runs line-follower episodes with a hand-written policy.
//
// Usage:
//
//	linefollower -config config/env.defaults.json -episodes 5 -policy heuristic -chart rewards.html
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/banshee-data/linefollower/internal/config"
	"github.com/banshee-data/linefollower/internal/env"
	"github.com/banshee-data/linefollower/internal/policy"
	"github.com/banshee-data/linefollower/internal/security"
	"github.com/banshee-data/linefollower/internal/version"
)

var (
	configPath  = flag.String("config", config.DefaultConfigPath, "Path to JSON environment config")
	trackName   = flag.String("track", "", "Track name (overrides config)")
	trackDirs   = flag.String("tracks", "", "Comma-separated extra track folders, searched first")
	episodes    = flag.Int("episodes", 1, "Number of episodes to run")
	seed        = flag.Int64("seed", 0, "Seed for the first episode; later episodes use seed+i")
	policyName  = flag.String("policy", "heuristic", "Policy: "+strings.Join(policy.Names, ", "))
	renderMode  = flag.String("render", "", "Render mode: \"\", rgb_array or frames (overrides config)")
	frameDir    = flag.String("frames", "", "Frame output directory for -render=frames (overrides config)")
	chartPath   = flag.String("chart", "", "Write an HTML reward chart to this path")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println("linefollower", version.String())
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e, err := env.New(cfg)
	if err != nil {
		log.Fatalf("failed to create env: %v", err)
	}
	defer e.Close()

	if *trackDirs != "" {
		for _, dir := range strings.Split(*trackDirs, ",") {
			if dir = strings.TrimSpace(dir); dir != "" {
				e.AddTrackFolder(dir)
			}
		}
	}

	rng := rand.New(rand.NewPCG(uint64(*seed), 1))
	p, err := policy.New(*policyName, e.ActionSpace(), cfg.GetSensorGrid()[0], rng)
	if err != nil {
		log.Fatalf("policy: %v", err)
	}

	log.Printf("linefollower %s: track=%s policy=%s episodes=%d", version.Version, cfg.GetTrack(), *policyName, *episodes)

	var runs []episodeRun
	for i := 0; i < *episodes; i++ {
		s := *seed + int64(i)
		run, err := runEpisode(e, p, s)
		if err != nil {
			log.Fatalf("episode %d: %v", i, err)
		}
		log.Printf("episode %d seed=%d steps=%d reward=%d", i, s, len(run.Rewards), run.Total())
		runs = append(runs, run)
	}

	if *chartPath != "" {
		if err := security.ValidateExportPath(*chartPath); err != nil {
			log.Fatalf("invalid chart path: %v", err)
		}
		f, err := os.Create(*chartPath)
		if err != nil {
			log.Fatalf("failed to create chart file: %v", err)
		}
		if err := writeRewardChart(f, runs); err != nil {
			f.Close()
			log.Fatalf("failed to render chart: %v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("failed to write chart: %v", err)
		}
		log.Printf("wrote reward chart to %s", *chartPath)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.EnvConfig, error) {
	cfg := config.DefaultEnvConfig()
	if _, err := os.Stat(*configPath); err == nil {
		if cfg, err = config.LoadEnvConfig(*configPath); err != nil {
			return nil, err
		}
	} else if *configPath != config.DefaultConfigPath {
		return nil, fmt.Errorf("config file %s: %w", *configPath, err)
	}

	if *trackName != "" {
		cfg.Track = trackName
	}
	if *renderMode != "" {
		cfg.RenderMode = renderMode
	}
	if *frameDir != "" {
		if err := security.ValidateExportPath(*frameDir); err != nil {
			return nil, fmt.Errorf("frame dir: %w", err)
		}
		cfg.FrameDir = frameDir
	}
	return cfg, cfg.Validate()
}

// episodeEnv is the part of env.Env an episode loop needs.
type episodeEnv interface {
	Reset(seed *int64) (env.Observation, env.Info, error)
	Step(a env.Action) (env.StepResult, error)
}

// episodeRun records the per-step rewards of one episode.
type episodeRun struct {
	Seed    int64
	ID      string
	Rewards []int
}

// Total is the episode return.
func (r episodeRun) Total() int {
	total := 0
	for _, v := range r.Rewards {
		total += v
	}
	return total
}

// runEpisode resets e with seed and steps p until the episode ends.
func runEpisode(e episodeEnv, p policy.Policy, seed int64) (episodeRun, error) {
	obs, info, err := e.Reset(&seed)
	if err != nil {
		return episodeRun{}, fmt.Errorf("reset: %w", err)
	}
	run := episodeRun{Seed: seed}
	if id, ok := info["episode_id"].(string); ok {
		run.ID = id
	}
	for {
		res, err := e.Step(p.Act(obs))
		if err != nil {
			return run, fmt.Errorf("step %d: %w", len(run.Rewards)+1, err)
		}
		run.Rewards = append(run.Rewards, res.Reward)
		if res.Terminated || res.Truncated {
			return run, nil
		}
		obs = res.Observation
	}
}
