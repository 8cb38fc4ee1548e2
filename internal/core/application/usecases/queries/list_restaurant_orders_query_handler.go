package queries

import (
	"context"

	"orderflow/internal/core/domain/model/order"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ListRestaurantOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListRestaurantOrdersQueryHandler(db *gorm.DB) ListRestaurantOrdersQueryHandler {
	return ListRestaurantOrdersQueryHandler{db: db}
}

// Handle lists the restaurant's orders oldest first, the order a kitchen
// works through them.
func (h ListRestaurantOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListRestaurantOrdersQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := requireScope(query.Actor(), order.RoleRestaurant, query.RestaurantID(), "list another restaurant's orders"); err != nil {
		return nil, err
	}

	stmt := `SELECT ` + orderColumns + ` FROM orders WHERE restaurant_id = ?`
	args := []any{query.RestaurantID()}
	if statuses := query.Statuses(); len(statuses) > 0 {
		clause, arg := h.statusFilter(statuses)
		stmt += clause
		args = append(args, arg)
	}
	stmt += ` ORDER BY created_at, id`

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}

	views, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	return redactAll(views, query.Actor()), nil
}

// statusFilter binds the whole set as one Postgres array parameter. Other
// dialects get an expanded IN list.
func (h ListRestaurantOrdersQueryHandler) statusFilter(statuses []order.Status) (string, any) {
	codes := make([]int64, 0, len(statuses))
	for _, s := range statuses {
		codes = append(codes, int64(s))
	}

	if h.db.Dialector.Name() == "postgres" {
		return ` AND status = ANY(?)`, pq.Array(codes)
	}
	return ` AND status IN ?`, codes
}
