// Package policy holds simple hand-written agents used by the demo CLI.
package policy

import (
	"fmt"
	"math/rand/v2"

	"github.com/banshee-data/linefollower/internal/env"
)

// Policy picks an action from an observation.
type Policy interface {
	Act(obs env.Observation) env.Action
}

// Names lists the policies New accepts.
var Names = []string{"heuristic", "random", "straight"}

// New builds a named policy for an action space. rows is the sensor grid
// row count, which is the width of the front sensor line.
func New(name string, space env.ActionSpace, rows int, rng *rand.Rand) (Policy, error) {
	switch name {
	case "heuristic":
		return Heuristic{Rows: rows, Continuous: !space.Discrete}, nil
	case "random":
		if rng == nil {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		return &Random{rng: rng, space: space}, nil
	case "straight":
		if space.Discrete {
			return Constant{Action: env.Straight}, nil
		}
		return Constant{Action: env.ContinuousAction{1, 1}}, nil
	}
	return nil, fmt.Errorf("unknown policy %q (want one of %v)", name, Names)
}

// Heuristic steers toward the line using the outermost sensors of the front
// row: a hit on the left slows the left wheel, a hit on the right slows the
// right wheel.
type Heuristic struct {
	Rows       int
	Continuous bool
}

// Act implements Policy.
func (h Heuristic) Act(obs env.Observation) env.Action {
	var left, right bool
	if h.Rows > 0 && len(obs) >= h.Rows {
		left, right = obs[0], obs[h.Rows-1]
	}

	if h.Continuous {
		a := env.ContinuousAction{1, 1}
		if left {
			a[0] = 0.1
		}
		if right {
			a[1] = 0.1
		}
		return a
	}

	switch {
	case left && !right:
		return env.SlowLeft
	case right && !left:
		return env.SlowRight
	}
	return env.Straight
}

// Random samples uniformly from the action space.
type Random struct {
	rng   *rand.Rand
	space env.ActionSpace
}

// Act implements Policy.
func (r *Random) Act(env.Observation) env.Action {
	if r.space.Discrete {
		return env.DiscreteAction(r.rng.IntN(r.space.N))
	}
	var a env.ContinuousAction
	for i := range a {
		lo, hi := r.space.Low[i], r.space.High[i]
		a[i] = lo + r.rng.Float64()*(hi-lo)
	}
	return a
}

// Constant always returns the same action.
type Constant struct {
	Action env.Action
}

// Act implements Policy.
func (c Constant) Act(env.Observation) env.Action { return c.Action }
