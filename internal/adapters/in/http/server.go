package http

import (
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"

	"github.com/go-playground/validator/v10"
)

// Handlers groups the use cases the REST surface dispatches to.
type Handlers struct {
	// Command handlers
	CreateOrder          commands.CreateOrderCommandHandler
	ChangeOrderStatus    commands.ChangeOrderStatusCommandHandler
	AcceptOrder          commands.AcceptOrderCommandHandler
	ReleaseOrder         commands.ReleaseOrderCommandHandler
	VerifyPin            commands.VerifyPinCommandHandler
	ResetPinAttempts     commands.ResetPinAttemptsCommandHandler
	ReportLocation       commands.ReportLocationCommandHandler
	SetRiderAvailability commands.SetRiderAvailabilityCommandHandler
	SetRiderCapacity     commands.SetRiderCapacityCommandHandler

	// Query handlers
	GetOrder             queries.GetOrderQueryHandler
	ListCustomerOrders   queries.ListCustomerOrdersQueryHandler
	ListRestaurantOrders queries.ListRestaurantOrdersQueryHandler
	ListAvailableOrders  queries.ListAvailableOrdersQueryHandler
	ListRiderOrders      queries.ListRiderOrdersQueryHandler
	GetRiderLocation     queries.GetRiderLocationQueryHandler
}

// Server translates HTTP requests into commands and queries and maps their
// results back to JSON.
type Server struct {
	handlers       Handlers
	deliveryCharge int64
	validate       *validator.Validate
	logger         *slog.Logger
}

// NewServer creates the HTTP server. deliveryCharge is stamped on every new
// order in minor currency units.
func NewServer(handlers Handlers, deliveryCharge int64, logger *slog.Logger) *Server {
	return &Server{
		handlers:       handlers,
		deliveryCharge: deliveryCharge,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		logger:         logger.With("component", "http"),
	}
}
