// Package msgs defines the wire messages exchanged between the MPC, the
// operator tools and the target trajectory node.
//
// Every message travels wrapped in a Typed envelope whose type ID selects
// the schema. Observations and target trajectories are events, goal and
// velocity commands are commands.
package msgs
