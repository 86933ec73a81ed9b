// Package tracks resolves a track identifier to its image and waypoint
// files and loads both.
//
// A track named "loop" is the pair loop.png and loop_waypoints.npy (or
// loop_waypoints.txt) in the same folder. User folders are searched first,
// most recently added first, then the default folders in order.
//
// Waypoints are stored in image coordinates (y down), exactly as authored.
package tracks
