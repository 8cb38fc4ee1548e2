package eventrepo

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormOrderEventRepository struct {
	db *gorm.DB
}

func NewGormOrderEventRepository(db *gorm.DB) *GormOrderEventRepository {
	return &GormOrderEventRepository{db: db}
}

// Append writes events as one batch. The unit of work calls it on commit.
func (r *GormOrderEventRepository) Append(ctx context.Context, events []order.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OrderEventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, fromDomain(e))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

func (r *GormOrderEventRepository) ListUnpublished(ctx context.Context, limit int) ([]order.DomainEvent, error) {
	var dtos []OrderEventDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("occurred_at, order_id, sequence").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]order.DomainEvent, 0, len(dtos))
	for _, dto := range dtos {
		e, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		events = append(events, e)
	}

	return events, nil
}

// ListByOrder returns an order's full history in sequence order.
func (r *GormOrderEventRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.DomainEvent, error) {
	var dtos []OrderEventDTO
	if err := r.db.WithContext(ctx).Order("sequence").Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	events := make([]order.DomainEvent, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, nil
}

func (r *GormOrderEventRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return r.db.WithContext(ctx).
		Model(&OrderEventDTO{}).
		Where("id IN ?", raw).
		Update("published_at", at).Error
}
