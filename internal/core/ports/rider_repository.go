package ports

import (
	"context"

	"orderflow/internal/core/domain/model/rider"
)

// RiderRepository persists rider aggregates with the same version check as
// OrderRepository.
type RiderRepository interface {
	Add(ctx context.Context, aggregate *rider.Rider) error
	Update(ctx context.Context, aggregate *rider.Rider) error
	Get(ctx context.Context, id string) (*rider.Rider, error)

	// ListOnline returns every rider currently accepting work.
	ListOnline(ctx context.Context) ([]*rider.Rider, error)
}
