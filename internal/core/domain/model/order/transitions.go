package order

import (
	"slices"

	"orderflow/internal/pkg/errs"
)

type transition struct {
	from           Status
	event          Event
	roles          []Role
	to             Status
	reasonRequired bool
}

// transitionTable is the single authority on legal lifecycle moves.
// Assignment keeps the status and only binds a rider.
var transitionTable = []transition{
	{from: Pending, event: EventAccept, roles: []Role{RoleRestaurant}, to: Preparing},
	{from: Pending, event: EventReject, roles: []Role{RoleRestaurant}, to: Cancelled, reasonRequired: true},
	{from: Pending, event: EventCancel, roles: []Role{RoleCustomer}, to: Cancelled},
	{from: Preparing, event: EventMarkReady, roles: []Role{RoleRestaurant}, to: ReadyForPickup},
	{from: Preparing, event: EventCancel, roles: []Role{RoleRestaurant, RoleCustomer}, to: Cancelled, reasonRequired: true},
	{from: ReadyForPickup, event: EventAssign, roles: []Role{RoleRider}, to: ReadyForPickup},
	{from: ReadyForPickup, event: EventVerifyRiderPin, roles: []Role{RoleRestaurant}, to: OutForDelivery},
	{from: OutForDelivery, event: EventVerifyCustomerPin, roles: []Role{RoleRider}, to: Delivered},
}

// decision is the outcome of looking an event up in the table.
type decision struct {
	row    transition
	replay bool
}

// decide resolves (from, event, role). A role that never performs the event,
// or a status where the event exists only for other roles, is Unauthorized.
// When no row starts at from but from is where this (event, role) leads, the
// call is a replay of an already applied transition.
func decide(from Status, event Event, role Role) (decision, error) {
	roleKnown := false
	for _, t := range transitionTable {
		if t.event == event && slices.Contains(t.roles, role) {
			roleKnown = true
			break
		}
	}
	if !roleKnown {
		return decision{}, errs.NewUnauthorizedError(role.String(), event.String())
	}

	otherRoles := false
	for _, t := range transitionTable {
		if t.from != from || t.event != event {
			continue
		}
		if slices.Contains(t.roles, role) {
			return decision{row: t}, nil
		}
		otherRoles = true
	}
	if otherRoles {
		return decision{}, errs.NewUnauthorizedError(role.String(), event.String())
	}

	for _, t := range transitionTable {
		if t.event == event && t.to == from && t.from != t.to && slices.Contains(t.roles, role) {
			return decision{row: t, replay: true}, nil
		}
	}

	return decision{}, errs.NewInvalidTransitionError(from.String(), event.String())
}

// NextStatuses lists statuses reachable from s in one step.
func NextStatuses(s Status) []Status {
	var next []Status
	for _, t := range transitionTable {
		if t.from == s && t.to != s && !slices.Contains(next, t.to) {
			next = append(next, t.to)
		}
	}
	return next
}
