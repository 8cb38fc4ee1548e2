// Package order provides the Order aggregate and the lifecycle state machine
// of a food-delivery order.
//
// The package includes:
//   - Order: the aggregate root holding items, totals, both handoff PINs and
//     the assigned rider
//   - Status and Event: closed enums for lifecycle positions and triggers
//   - the transition table that decides which (status, event, role) moves are
//     legal
//   - DomainEvent: the append-only history recorded by every mutation
//
// Key business rules:
//   - Status advances pending -> preparing -> ready_for_pickup ->
//     out_for_delivery -> delivered; cancelled is reachable only from
//     pending or preparing
//   - Re-submitting an already applied event returns the current state
//   - A rider is bound only while ready_for_pickup and never replaced
//     without an explicit release
//   - The two custody handoffs are PIN-gated with an attempt lockout
package order
