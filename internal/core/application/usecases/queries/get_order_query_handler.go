package queries

import (
	"context"
	"database/sql"
	"errors"

	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order redacted for the caller. Callers who are not party
// to the order get Unauthorized, not NotFound.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()
	if err := row.Err(); err != nil {
		return OrderView{}, err
	}

	view, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return OrderView{}, err
	}

	if !view.VisibleTo(query.Actor()) {
		return OrderView{}, errs.NewUnauthorizedError(query.Actor().Role.String(), "view an order it is not party to")
	}

	return view.RedactFor(query.Actor()), nil
}
