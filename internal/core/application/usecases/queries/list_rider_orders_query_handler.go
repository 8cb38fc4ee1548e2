package queries

import (
	"context"

	"orderflow/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type ListRiderOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListRiderOrdersQueryHandler(db *gorm.DB) ListRiderOrdersQueryHandler {
	return ListRiderOrdersQueryHandler{db: db}
}

func (h ListRiderOrdersQueryHandler) Handle(ctx context.Context, query ListRiderOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := requireScope(query.Actor(), order.RoleRider, query.RiderID(), "list another rider's orders"); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE rider_id = ?
			AND is_active = ?
		ORDER BY created_at, id
	`, query.RiderID(), true).Rows()
	if err != nil {
		return nil, err
	}

	views, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	return redactAll(views, query.Actor()), nil
}
