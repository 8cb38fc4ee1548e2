// Package kernel holds the value objects shared by the order and rider
// aggregates: UUID identifiers, GeoPoint coordinates and the four digit
// handoff PIN.
package kernel
