package locationrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/rider"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormLocationRepository struct {
	db *gorm.DB
}

func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// Upsert writes the slot in a single statement:
//
//	INSERT ... ON CONFLICT (rider_id) DO UPDATE SET ...
//	WHERE rider_locations.recorded_at_nanos < excluded.recorded_at_nanos
//
// so concurrent reports for one rider can never move the slot backwards.
func (r *GormLocationRepository) Upsert(ctx context.Context, loc rider.Location) (bool, error) {
	if err := loc.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(loc)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "rider_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"latitude", "longitude", "recorded_at", "recorded_at_nanos", "order_id",
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "rider_locations.recorded_at_nanos < excluded.recorded_at_nanos"},
		}},
	}).Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *GormLocationRepository) Get(ctx context.Context, riderID string) (rider.Location, error) {
	if riderID == "" {
		return rider.Location{}, errs.NewValueIsRequiredError("rider_id")
	}

	var dto LocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "rider_id = ?", riderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rider.Location{}, errs.NewObjectNotFoundError("location", riderID)
		}
		return rider.Location{}, err
	}

	return toDomain(dto)
}
