// Package target converts operator commands into reference trajectories
// for the legged robot MPC.
//
// Two kinds of commands are supported: a goal (x, y, yaw) which is reached
// at a pace derived from the configured target velocities, and a body frame
// velocity command which is integrated into a world frame target and
// extrapolated by a fixed look-ahead. Either way the output is a target
// trajectory of exactly two waypoints: the current pose at the observation
// time and the target pose at the target reaching time.
package target
