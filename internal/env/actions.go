package env

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidAction is returned when an action does not belong to the
// environment's action space.
var ErrInvalidAction = errors.New("invalid action")

// Action is a DiscreteAction or a ContinuousAction.
type Action interface {
	isAction()
}

// DiscreteAction indexes DiscretePresets.
type DiscreteAction int

// ContinuousAction is (left, right) wheel speed, clipped to the action bound.
type ContinuousAction [2]float64

func (DiscreteAction) isAction()   {}
func (ContinuousAction) isAction() {}

// Discrete action indices.
const (
	SlowLeft  DiscreteAction = iota // slow down the left wheel
	Straight                        // both wheels at normal speed
	SlowRight                       // slow down the right wheel
)

// DiscretePresets maps discrete actions to (left, right) wheel speeds.
var DiscretePresets = [...][2]float64{
	SlowLeft:  {0.1, 1.0},
	Straight:  {1.0, 1.0},
	SlowRight: {1.0, 0.1},
}

// ActionSpace describes the accepted actions.
type ActionSpace struct {
	Discrete bool
	N        int        // number of discrete actions
	Low      [2]float64 // continuous bounds
	High     [2]float64
}

// Contains reports whether a is a member of the space. Continuous actions
// outside the bounds are still accepted by Step, which clips them.
func (s ActionSpace) Contains(a Action) bool {
	switch v := a.(type) {
	case DiscreteAction:
		return s.Discrete && int(v) >= 0 && int(v) < s.N
	case ContinuousAction:
		if s.Discrete {
			return false
		}
		for i := range v {
			if v[i] < s.Low[i] || v[i] > s.High[i] {
				return false
			}
		}
		return true
	}
	return false
}

// ObservationSpace describes the sensor vector: N binary values.
type ObservationSpace struct {
	N int
}

type decoder interface {
	decode(a Action) (left, right float64, err error)
	space() ActionSpace
}

type presetDecoder struct{}

func (presetDecoder) decode(a Action) (float64, float64, error) {
	d, ok := a.(DiscreteAction)
	if !ok {
		return 0, 0, fmt.Errorf("%w: expected DiscreteAction, got %T", ErrInvalidAction, a)
	}
	if d < 0 || int(d) >= len(DiscretePresets) {
		return 0, 0, fmt.Errorf("%w: discrete action %d out of range [0, %d)", ErrInvalidAction, d, len(DiscretePresets))
	}
	p := DiscretePresets[d]
	return p[0], p[1], nil
}

func (presetDecoder) space() ActionSpace {
	return ActionSpace{Discrete: true, N: len(DiscretePresets)}
}

type clipDecoder struct {
	bound float64
}

func (c clipDecoder) decode(a Action) (float64, float64, error) {
	v, ok := a.(ContinuousAction)
	if !ok {
		return 0, 0, fmt.Errorf("%w: expected ContinuousAction, got %T", ErrInvalidAction, a)
	}
	return clip(v[0], c.bound), clip(v[1], c.bound), nil
}

func (c clipDecoder) space() ActionSpace {
	return ActionSpace{
		Low:  [2]float64{-c.bound, -c.bound},
		High: [2]float64{c.bound, c.bound},
	}
}

func clip(v, bound float64) float64 {
	return math.Max(-bound, math.Min(bound, v))
}
