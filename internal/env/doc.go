// Package env is the episode controller of the line-follower environment.
//
// It composes the vehicle, track map and reward tracker into reset/step
// semantics: Reset spawns the vehicle on a random waypoint facing the next
// one; Step decodes an action, advances the vehicle by one fixed tick,
// samples the sensors and claims waypoints.
//
// Episodes never terminate on their own. They are truncated once the step
// counter exceeds the configured maximum (strictly greater-than, so the
// first truncated step is max_steps+1).
//
// An Env is single-threaded and not safe for concurrent use.
package env
