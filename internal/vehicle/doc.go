// Package vehicle models the differential-drive line follower.
//
// Responsibilities: pose state, the kinematic motion model that turns two
// wheel speeds into a new pose, and the sensor lattice geometry in both the
// vehicle frame and the world frame.
// Key types: Pose, Geometry, Vehicle.
//
// Coordinates are simulation coordinates with the y-axis pointing up.
// Conversion to image coordinates (y down) happens in the track map.
// No drawing code is allowed in this package.
package vehicle
