package rider

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

const (
	MinCapacity = 1
	MaxCapacity = 10
)

var ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider or RestoreRider")

// Rider tracks availability and the orders a rider currently holds.
// len(activeOrderIDs) never exceeds capacity.
type Rider struct {
	id             string
	online         bool
	onlineSince    time.Time
	capacity       int
	activeOrderIDs []kernel.UUID
	version        int64
	dirty          bool
	guard          guard.ConstructorGuard
}

// NewRider registers an offline rider with the given capacity.
func NewRider(id string, capacity int) (*Rider, error) {
	r := &Rider{
		dirty: true,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(r.setID(id), r.setCapacity(capacity)); err != nil {
		return nil, err
	}

	return r, nil
}

// Snapshot carries persisted rider state back into the domain.
type Snapshot struct {
	ID             string
	Online         bool
	OnlineSince    time.Time
	Capacity       int
	ActiveOrderIDs []kernel.UUID
	Version        int64
}

func RestoreRider(s Snapshot) (*Rider, error) {
	r := &Rider{
		online:      s.Online,
		onlineSince: s.OnlineSince,
		version:     s.Version,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(s.ID),
		r.setCapacity(s.Capacity),
		r.setActiveOrders(s.ActiveOrderIDs),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

func (r *Rider) ID() string     { return r.id }
func (r *Rider) IsOnline() bool { return r.online }

// OnlineSince is when the rider last went online. Zero while offline.
func (r *Rider) OnlineSince() time.Time { return r.onlineSince }
func (r *Rider) Capacity() int          { return r.capacity }
func (r *Rider) Version() int64         { return r.version }
func (r *Rider) HasChanges() bool       { return r.dirty }

func (r *Rider) ActiveOrderIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(r.activeOrderIDs))
	copy(out, r.activeOrderIDs)
	return out
}

func (r *Rider) ActiveOrderCount() int {
	return len(r.activeOrderIDs)
}

func (r *Rider) HasSpareCapacity() bool {
	return len(r.activeOrderIDs) < r.capacity
}

func (r *Rider) HasOrder(orderID kernel.UUID) bool {
	return slices.ContainsFunc(r.activeOrderIDs, orderID.IsEqual)
}

// AdvanceVersion is called by the repository after a successful write.
func (r *Rider) AdvanceVersion() {
	r.version++
	r.dirty = false
}

func (r *Rider) GoOnline(now time.Time) {
	if !r.online {
		r.online = true
		r.onlineSince = now.UTC()
		r.dirty = true
	}
}

// GoOffline keeps held orders; an offline rider just cannot take new ones.
func (r *Rider) GoOffline() {
	if r.online {
		r.online = false
		r.onlineSince = time.Time{}
		r.dirty = true
	}
}

func (r *Rider) SetCapacity(capacity int) error {
	if capacity < len(r.activeOrderIDs) {
		return errs.NewValueIsOutOfRangeErrorWithCause("capacity", capacity, len(r.activeOrderIDs), MaxCapacity,
			fmt.Errorf("rider holds %d orders", len(r.activeOrderIDs)))
	}
	if capacity == r.capacity {
		return nil
	}
	if err := r.setCapacity(capacity); err != nil {
		return err
	}
	r.dirty = true
	return nil
}

// IsIdle reports whether the rider is online, holds nothing and has shown no
// sign of life since lastSeen+timeout. lastSeen is the latest location fix and
// may be zero; going online counts as being seen.
func (r *Rider) IsIdle(lastSeen, now time.Time, timeout time.Duration) bool {
	if !r.online || len(r.activeOrderIDs) > 0 || timeout <= 0 {
		return false
	}
	if r.onlineSince.After(lastSeen) {
		lastSeen = r.onlineSince
	}
	return now.Sub(lastSeen) > timeout
}

// CanTakeOrder reports why the rider could not claim orderID, or nil.
func (r *Rider) CanTakeOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if r.HasOrder(orderID) {
		return nil
	}
	if !r.online {
		return errs.ErrRiderOffline
	}
	if !r.HasSpareCapacity() {
		return fmt.Errorf("%w: %d of %d slots in use", errs.ErrCapacityExceeded, len(r.activeOrderIDs), r.capacity)
	}
	return nil
}

// TakeOrder claims a capacity slot. Holding the order already is a no-op.
func (r *Rider) TakeOrder(orderID kernel.UUID) error {
	if err := r.CanTakeOrder(orderID); err != nil {
		return err
	}
	if r.HasOrder(orderID) {
		return nil
	}

	r.activeOrderIDs = append(r.activeOrderIDs, orderID)
	r.dirty = true
	return nil
}

// ReleaseOrder frees the slot held for orderID and reports whether one was held.
func (r *Rider) ReleaseOrder(orderID kernel.UUID) bool {
	idx := slices.IndexFunc(r.activeOrderIDs, orderID.IsEqual)
	if idx < 0 {
		return false
	}
	r.activeOrderIDs = slices.Delete(r.activeOrderIDs, idx, idx+1)
	r.dirty = true
	return true
}

func (r *Rider) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("rider_id")
	}
	r.id = id
	return nil
}

func (r *Rider) setCapacity(capacity int) error {
	if capacity < MinCapacity || capacity > MaxCapacity {
		return errs.NewValueIsOutOfRangeError("capacity", capacity, MinCapacity, MaxCapacity)
	}
	r.capacity = capacity
	return nil
}

func (r *Rider) setActiveOrders(ids []kernel.UUID) error {
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	if len(ids) > r.capacity && r.capacity > 0 {
		return errs.NewValueIsOutOfRangeError("active_order_ids", len(ids), 0, r.capacity)
	}
	r.activeOrderIDs = slices.Clone(ids)
	return nil
}
