// Package ports defines the contracts between the application layer and the
// adapters that persist and publish order lifecycle state.
package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	// Add inserts a new order. The aggregate's version is advanced on success.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the aggregate only if the stored version still equals
	// aggregate.Version(). A lost race yields errs.ErrVersionIsInvalid and the
	// caller is expected to reload and decide again.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ErrObjectNotFound for an unknown id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
