package ports

import (
	"context"

	"orderflow/internal/core/domain/model/rider"
)

// LocationRepository keeps one location slot per rider.
type LocationRepository interface {
	// Upsert stores loc unless the slot already holds a reading at or after
	// loc.RecordedAt(). It reports whether the write was applied.
	Upsert(ctx context.Context, loc rider.Location) (bool, error)

	Get(ctx context.Context, riderID string) (rider.Location, error)
}
