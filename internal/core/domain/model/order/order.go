package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// PinKind selects one of the two handoff codes.
type PinKind int

const (
	PinKindUnknown PinKind = iota
	PinKindRider
	PinKindCustomer
)

func ParsePinKind(s string) (PinKind, error) {
	switch s {
	case "rider":
		return PinKindRider, nil
	case "customer":
		return PinKindCustomer, nil
	default:
		return PinKindUnknown, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a pin kind", s))
	}
}

func (k PinKind) String() string {
	switch k {
	case PinKindRider:
		return "rider"
	case PinKindCustomer:
		return "customer"
	default:
		return "unknown"
	}
}

func (k PinKind) event() Event {
	if k == PinKindRider {
		return EventVerifyRiderPin
	}
	return EventVerifyCustomerPin
}

// Order is the aggregate root of the delivery lifecycle.
type Order struct {
	id           kernel.UUID
	customerID   string
	restaurantID string
	riderID      string

	items          []Item
	subtotal       int64
	deliveryCharge int64
	totalAmount    int64

	status             Status
	cancellationReason string

	riderPIN            kernel.PIN
	customerPIN         kernel.PIN
	riderPinAttempts    int
	customerPinAttempts int

	address Address

	createdAt time.Time
	updatedAt time.Time

	version  int64
	eventSeq int64
	events   []DomainEvent

	guard guard.ConstructorGuard
}

// NewOrder places an order in pending, computes its totals and draws both
// handoff PINs independently.
func NewOrder(
	id kernel.UUID,
	customerID, restaurantID string,
	items []Item,
	deliveryCharge int64,
	address Address,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setDeliveryCharge(deliveryCharge),
		o.setAddress(address),
	); err != nil {
		return nil, err
	}

	var err error
	if o.riderPIN, err = kernel.GeneratePIN(); err != nil {
		return nil, err
	}
	if o.customerPIN, err = kernel.GeneratePIN(); err != nil {
		return nil, err
	}

	for _, it := range o.items {
		o.subtotal += it.LineTotal()
	}
	o.totalAmount = o.subtotal + o.deliveryCharge

	o.record(EventTypeCreated, Unknown, Pending, Actor{ID: customerID, Role: RoleCustomer}, "", "", now)
	return o, nil
}

// Snapshot carries persisted order state back into the domain.
type Snapshot struct {
	ID                  kernel.UUID
	CustomerID          string
	RestaurantID        string
	RiderID             string
	Items               []Item
	Subtotal            int64
	DeliveryCharge      int64
	TotalAmount         int64
	Status              Status
	CancellationReason  string
	RiderPIN            kernel.PIN
	CustomerPIN         kernel.PIN
	RiderPinAttempts    int
	CustomerPinAttempts int
	Address             Address
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Version             int64
	EventSequence       int64
}

// RestoreOrder rebuilds an order from storage. Totals are taken as stored,
// never recomputed.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		riderID:             s.RiderID,
		subtotal:            s.Subtotal,
		totalAmount:         s.TotalAmount,
		cancellationReason:  s.CancellationReason,
		riderPIN:            s.RiderPIN,
		customerPIN:         s.CustomerPIN,
		riderPinAttempts:    s.RiderPinAttempts,
		customerPinAttempts: s.CustomerPinAttempts,
		createdAt:           s.CreatedAt,
		updatedAt:           s.UpdatedAt,
		version:             s.Version,
		eventSeq:            s.EventSequence,
		guard:               guard.NewConstructorGuard(),
	}

	var pinErr error
	if s.RiderPIN.IsZero() || s.CustomerPIN.IsZero() {
		pinErr = errs.NewValueIsRequiredError("pin")
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomerID(s.CustomerID),
		o.setRestaurantID(s.RestaurantID),
		o.setItems(s.Items),
		o.setDeliveryCharge(s.DeliveryCharge),
		o.setAddress(s.Address),
		o.setStatus(s.Status),
		pinErr,
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID            { return o.id }
func (o *Order) CustomerID() string         { return o.customerID }
func (o *Order) RestaurantID() string       { return o.restaurantID }
func (o *Order) RiderID() string            { return o.riderID }
func (o *Order) HasRider() bool             { return o.riderID != "" }
func (o *Order) Subtotal() int64            { return o.subtotal }
func (o *Order) DeliveryCharge() int64      { return o.deliveryCharge }
func (o *Order) TotalAmount() int64         { return o.totalAmount }
func (o *Order) Status() Status             { return o.status }
func (o *Order) CancellationReason() string { return o.cancellationReason }
func (o *Order) RiderPIN() kernel.PIN       { return o.riderPIN }
func (o *Order) CustomerPIN() kernel.PIN    { return o.customerPIN }
func (o *Order) RiderPinAttempts() int      { return o.riderPinAttempts }
func (o *Order) CustomerPinAttempts() int   { return o.customerPinAttempts }
func (o *Order) Address() Address           { return o.address }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) UpdatedAt() time.Time       { return o.updatedAt }
func (o *Order) Version() int64             { return o.version }
func (o *Order) EventSequence() int64       { return o.eventSeq }

func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// IsActive is derived from status and never stored on its own.
func (o *Order) IsActive() bool {
	return !o.status.IsTerminal()
}

func (o *Order) PinAttempts(kind PinKind) int {
	if kind == PinKindRider {
		return o.riderPinAttempts
	}
	return o.customerPinAttempts
}

// DomainEvents returns events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(o.events))
	copy(out, o.events)
	return out
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) HasChanges() bool {
	return len(o.events) > 0
}

// AdvanceVersion is called by the repository after a successful write.
func (o *Order) AdvanceVersion() {
	o.version++
}

// Apply drives the restaurant and customer status events. It returns false
// without error when the event was already applied.
func (o *Order) Apply(actor Actor, event Event, reason string, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if !event.IsStatusEvent() {
		return false, errs.NewValueIsInvalidErrorWithCause("event",
			fmt.Errorf("%s is not a status event", event))
	}

	d, err := o.authorize(actor, event)
	if err != nil {
		return false, err
	}
	if d.replay {
		return false, nil
	}
	if d.row.reasonRequired && reason == "" {
		return false, errs.NewValueIsRequiredError("reason")
	}

	from := o.status
	o.status = d.row.to
	if o.status == Cancelled {
		o.cancellationReason = reason
	}
	o.record(statusEventType(event, o.status), from, o.status, actor, "", reason, now)
	return true, nil
}

// AssignRider binds a rider to a ready order. The same rider claiming again
// is a no-op; any other rider gets AlreadyAssigned.
func (o *Order) AssignRider(riderID string, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if riderID == "" {
		return false, errs.NewValueIsRequiredError("rider_id")
	}

	if o.riderID != "" {
		if o.riderID == riderID && o.status == ReadyForPickup {
			return false, nil
		}
		return false, errs.ErrAlreadyAssigned
	}

	d, err := decide(o.status, EventAssign, RoleRider)
	if err != nil {
		return false, err
	}

	o.riderID = riderID
	o.record(EventTypeRiderAssigned, o.status, d.row.to, Actor{ID: riderID, Role: RoleRider}, riderID, "", now)
	return true, nil
}

// ReleaseRider drops the assignment while the order still waits at the
// restaurant. Custody cannot be dropped after pickup.
func (o *Order) ReleaseRider(riderID string, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if riderID == "" {
		return false, errs.NewValueIsRequiredError("rider_id")
	}
	if o.riderID == "" {
		return false, nil
	}
	if o.riderID != riderID {
		return false, errs.NewUnauthorizedError(RoleRider.String(), "release an order assigned to another rider")
	}
	if o.status != ReadyForPickup {
		return false, errs.NewInvalidTransitionError(o.status.String(), "release")
	}

	o.riderID = ""
	o.record(EventTypeRiderReleased, o.status, o.status, Actor{ID: riderID, Role: RoleRider}, riderID, "", now)
	return true, nil
}

// VerifyPin checks a submitted handoff code. A mismatch counts an attempt and
// still returns true so the caller persists the counter. Once maxAttempts
// consecutive failures are recorded, further calls fail with ErrPinLocked
// before any comparison.
func (o *Order) VerifyPin(kind PinKind, actor Actor, submitted string, maxAttempts int, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if kind != PinKindRider && kind != PinKindCustomer {
		return false, errs.NewValueIsInvalidError("kind")
	}
	if err := kernel.ValidatePINFormat(submitted); err != nil {
		return false, err
	}

	event := kind.event()
	d, err := o.authorize(actor, event)
	if err != nil {
		return false, err
	}

	pin, attempts := o.riderPIN, &o.riderPinAttempts
	if kind == PinKindCustomer {
		pin, attempts = o.customerPIN, &o.customerPinAttempts
	}

	if d.replay {
		if pin.Matches(submitted) {
			return false, nil
		}
		return false, errs.NewInvalidTransitionError(o.status.String(), event.String())
	}
	if kind == PinKindRider && o.riderID == "" {
		return false, errs.NewInvalidTransitionError(o.status.String()+" without rider", event.String())
	}
	if *attempts >= maxAttempts {
		return false, fmt.Errorf("%w: %s pin after %d failed attempts", errs.ErrPinLocked, kind, *attempts)
	}

	if !pin.Matches(submitted) {
		*attempts++
		o.record(EventTypePinRejected, o.status, o.status, actor, o.riderID, kind.String(), now)
		return true, errs.NewInvalidPinError(kind.String(), maxAttempts-*attempts)
	}

	*attempts = 0
	from := o.status
	o.status = d.row.to
	o.record(statusEventType(event, o.status), from, o.status, actor, o.riderID, "", now)
	return true, nil
}

// ResetPinAttempts unlocks a PIN. Only operators may do this.
func (o *Order) ResetPinAttempts(kind PinKind, actor Actor, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if actor.Role != RoleOperator {
		return false, errs.NewUnauthorizedError(actor.Role.String(), "reset pin attempts")
	}

	switch kind {
	case PinKindRider:
		if o.riderPinAttempts == 0 {
			return false, nil
		}
		o.riderPinAttempts = 0
	case PinKindCustomer:
		if o.customerPinAttempts == 0 {
			return false, nil
		}
		o.customerPinAttempts = 0
	default:
		return false, errs.NewValueIsInvalidError("kind")
	}

	o.record(EventTypePinReset, o.status, o.status, actor, o.riderID, kind.String(), now)
	return true, nil
}

// IsParty reports whether actor may see this order at all.
func (o *Order) IsParty(actor Actor) bool {
	switch actor.Role {
	case RoleCustomer:
		return actor.ID == o.customerID
	case RoleRestaurant:
		return actor.ID == o.restaurantID
	case RoleRider:
		return o.riderID != "" && actor.ID == o.riderID
	case RoleOperator, RoleSystem:
		return true
	default:
		return false
	}
}

// authorize runs the table lookup and then the ownership check. Table-level
// Unauthorized wins over ownership so callers learn about roles first.
func (o *Order) authorize(actor Actor, event Event) (decision, error) {
	d, err := decide(o.status, event, actor.Role)
	if errors.Is(err, errs.ErrUnauthorized) {
		return decision{}, err
	}
	if !o.IsParty(actor) {
		return decision{}, errs.NewUnauthorizedError(actor.Role.String(), event.String()+" an order it is not party to")
	}
	if err != nil {
		return decision{}, err
	}
	return d, nil
}

func (o *Order) record(t EventType, from, to Status, actor Actor, riderID, reason string, now time.Time) {
	o.eventSeq++
	o.updatedAt = now
	o.events = append(o.events, DomainEvent{
		ID:         kernel.NewUUID(),
		OrderID:    o.id,
		Sequence:   o.eventSeq,
		Type:       t,
		FromStatus: from,
		ToStatus:   to,
		ActorRole:  actor.Role,
		ActorID:    actor.ID,
		RiderID:    riderID,
		Reason:     reason,
		OccurredAt: now,
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("customer_id")
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("restaurant_id")
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDeliveryCharge(charge int64) error {
	if charge < 0 {
		return errs.NewValueIsOutOfRangeError("delivery_charge", charge, 0, "unbounded")
	}
	o.deliveryCharge = charge
	return nil
}

func (o *Order) setAddress(a Address) error {
	if err := a.point.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("delivery_address", err)
	}
	o.address = a
	return nil
}

func (o *Order) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.status = s
	return nil
}
