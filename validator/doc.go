// Package validator runs collective checks over a distributed graph.
//
// What:
//
// Three checks, each a single round of collectives whose verdict is
// OR-reduced across the process group so every rank agrees:
//
//   - ValidateSimpleGraph: endpoints inside [0, n), no self loops
//     unless permitted, no duplicate edges.
//   - ValidateUndirected: every (u, v) whose head lives on another rank
//     sends a (v, u) probe to the owner; the owner verifies presence.
//   - ValidateRangesConsecutive: the owned vertex ranges tile [0, n)
//     without gaps or overlap.
//
// A failed check returns an error wrapping ErrValidation with the first
// local diagnostic; ranks that pass locally report the peer failure.
// The caller decides whether to terminate the group.
//
// Errors: ErrValidation; communicator errors pass through unwrapped.
package validator
