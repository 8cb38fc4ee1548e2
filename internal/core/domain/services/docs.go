// Package services provides domain services that coordinate the Order and
// Rider aggregates.
//
// The package includes:
//   - AssignmentCoordinator: claims and drops of ready orders by riders, plus
//     distance ranking of the available pool
//   - HandoffVerifier: the two PIN-gated custody handoffs with lockout
//
// Services decide and mutate aggregates in memory. Atomicity comes from the
// unit of work that persists them with optimistic version checks.
package services
