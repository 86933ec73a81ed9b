// Package reward tracks an ordered, cyclic sequence of waypoints and turns
// vehicle positions into in-order claim counts.
package reward

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Tracker holds a fixed waypoint ring and a rotation offset. Claimed
// waypoints move to the back of the ring by advancing the offset; the
// backing slice is never reordered, so laps continue indefinitely.
type Tracker struct {
	waypoints []r2.Vec
	head      int
	hitbox    float64
	height    float64
}

// NewTracker copies the waypoints, already ordered and rotated so that the
// first element is the next one to claim. Waypoints are stored in image
// coordinates (y down); height is used to flip vehicle positions into that
// frame before comparing.
func NewTracker(waypoints []r2.Vec, hitbox, height float64) *Tracker {
	wp := make([]r2.Vec, len(waypoints))
	copy(wp, waypoints)
	return &Tracker{
		waypoints: wp,
		hitbox:    hitbox,
		height:    height,
	}
}

// Claim returns how many waypoints the position claims in this call.
// Starting from the head, each waypoint strictly within the hitbox radius is
// counted and rotated to the tail. Claiming stops at the first waypoint out
// of range, so a reachable later waypoint never counts ahead of an earlier
// one. A single call claims at most one full lap.
func (t *Tracker) Claim(pos r2.Vec) int {
	p := r2.Vec{X: pos.X, Y: t.height - pos.Y}
	n := len(t.waypoints)

	claimed := 0
	for claimed < n {
		if r2.Norm(r2.Sub(p, t.waypoints[t.head])) >= t.hitbox {
			break
		}
		claimed++
		t.head = (t.head + 1) % n
	}
	return claimed
}

// Head returns the next waypoint to claim. ok is false for an empty ring.
func (t *Tracker) Head() (wp r2.Vec, ok bool) {
	if len(t.waypoints) == 0 {
		return r2.Vec{}, false
	}
	return t.waypoints[t.head], true
}

// Pending returns a copy of the ring in claim order, head first.
func (t *Tracker) Pending() []r2.Vec {
	n := len(t.waypoints)
	out := make([]r2.Vec, n)
	for i := range out {
		out[i] = t.waypoints[(t.head+i)%n]
	}
	return out
}

// Len returns the ring size.
func (t *Tracker) Len() int { return len(t.waypoints) }

// Hitbox returns the claim radius.
func (t *Tracker) Hitbox() float64 { return t.hitbox }

// Rotate returns a copy of waypoints rotated left by k, so element k becomes
// the head. k is reduced modulo the length and may be negative.
func Rotate(waypoints []r2.Vec, k int) []r2.Vec {
	n := len(waypoints)
	out := make([]r2.Vec, n)
	if n == 0 {
		return out
	}
	k = ((k % n) + n) % n
	copy(out, waypoints[k:])
	copy(out[n-k:], waypoints[:k])
	return out
}

// Reverse returns a reversed copy of waypoints.
func Reverse(waypoints []r2.Vec) []r2.Vec {
	n := len(waypoints)
	out := make([]r2.Vec, n)
	for i, wp := range waypoints {
		out[n-1-i] = wp
	}
	return out
}
