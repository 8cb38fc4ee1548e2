package riderrepo

import (
	"context"
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/rider"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormRiderRepository struct {
	db *gorm.DB
}

func NewGormRiderRepository(db *gorm.DB) *GormRiderRepository {
	return &GormRiderRepository{db: db}
}

func (r *GormRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	aggregate.AdvanceVersion()
	return nil
}

// Update is the rider half of the assignment compare-and-set.
func (r *GormRiderRepository) Update(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1
	result := r.db.WithContext(ctx).
		Model(&RiderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("rider",
			fmt.Errorf("rider %s is no longer at version %d", aggregate.ID(), aggregate.Version()))
	}

	aggregate.AdvanceVersion()
	return nil
}

func (r *GormRiderRepository) Get(ctx context.Context, id string) (*rider.Rider, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("rider_id")
	}

	var dto RiderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormRiderRepository) ListOnline(ctx context.Context) ([]*rider.Rider, error) {
	var dtos []RiderDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos, "online = ?", true).Error; err != nil {
		return nil, err
	}

	riders := make([]*rider.Rider, 0, len(dtos))
	for _, dto := range dtos {
		rd, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		riders = append(riders, rd)
	}

	return riders, nil
}
