// Package commands holds the write use cases. Each command is a
// constructor-guarded value object paired with a handler that owns one
// unit-of-work transaction per attempt.
package commands

import (
	"context"

	"orderflow/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	RiderRepoFactory interface {
		RiderRepository() ports.RiderRepository
	}

	LocationRepoFactory interface {
		LocationRepository() ports.LocationRepository
	}

	OrderEventRepoFactory interface {
		OrderEventRepository() ports.OrderEventRepository
	}

	// OrderUoW is used by commands that touch a single order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	RiderUoW interface {
		TxManager
		RiderRepoFactory
	}

	RiderUoWFactory interface {
		Create() RiderUoW
	}

	LocationUoW interface {
		TxManager
		LocationRepoFactory
	}

	LocationUoWFactory interface {
		Create() LocationUoW
	}

	// PresenceUoW reads locations to decide which riders to take offline.
	PresenceUoW interface {
		TxManager
		RiderRepoFactory
		LocationRepoFactory
	}

	PresenceUoWFactory interface {
		Create() PresenceUoW
	}

	OrderEventUoW interface {
		TxManager
		OrderEventRepoFactory
	}

	OrderEventUoWFactory interface {
		Create() OrderEventUoW
	}

	// UoW spans an order and the rider holding it. Assignment and handoff
	// commands write both rows in the same transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, id)
	//   r, err := uow.RiderRepository().Get(ctx, riderID)
	//   // ... decide, then Update both
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		RiderRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
