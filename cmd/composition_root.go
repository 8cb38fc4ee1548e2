package cmd

import (
	"log/slog"

	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/logpublisher"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) assignmentUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) riderUoWFactory() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.config.AssignmentRetryLimit)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.assignmentUoWFactory(), c.config.AssignmentRetryLimit)
}

func (c *CompositionRoot) CreateReleaseOrderCommandHandler() commands.ReleaseOrderCommandHandler {
	return commands.NewReleaseOrderCommandHandler(c.assignmentUoWFactory(), c.config.AssignmentRetryLimit)
}

func (c *CompositionRoot) CreateVerifyPinCommandHandler() commands.VerifyPinCommandHandler {
	return commands.NewVerifyPinCommandHandler(c.assignmentUoWFactory(), c.config.PinMaxAttempts, c.config.AssignmentRetryLimit)
}

func (c *CompositionRoot) CreateResetPinAttemptsCommandHandler() commands.ResetPinAttemptsCommandHandler {
	return commands.NewResetPinAttemptsCommandHandler(c.orderUoWFactory(), c.config.AssignmentRetryLimit)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	var f commands.LocationUoWFactory = FuncLocationUoWFactory(func() commands.LocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportLocationCommandHandler(f)
}

func (c *CompositionRoot) CreateSetRiderAvailabilityCommandHandler() commands.SetRiderAvailabilityCommandHandler {
	return commands.NewSetRiderAvailabilityCommandHandler(
		c.riderUoWFactory(), c.config.RiderDefaultCapacity, c.config.AssignmentRetryLimit,
	)
}

func (c *CompositionRoot) CreateSetRiderCapacityCommandHandler() commands.SetRiderCapacityCommandHandler {
	return commands.NewSetRiderCapacityCommandHandler(c.riderUoWFactory(), c.config.AssignmentRetryLimit)
}

func (c *CompositionRoot) CreateMarkIdleRidersOfflineCommandHandler() commands.MarkIdleRidersOfflineCommandHandler {
	var f commands.PresenceUoWFactory = FuncPresenceUoWFactory(func() commands.PresenceUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkIdleRidersOfflineCommandHandler(f)
}

func (c *CompositionRoot) CreateRelayOrderEventsCommandHandler() commands.RelayOrderEventsCommandHandler {
	var f commands.OrderEventUoWFactory = FuncOrderEventUoWFactory(func() commands.OrderEventUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOrderEventsCommandHandler(f, logpublisher.New(c.logger))
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCustomerOrdersQueryHandler() queries.ListCustomerOrdersQueryHandler {
	return queries.NewListCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListRestaurantOrdersQueryHandler() queries.ListRestaurantOrdersQueryHandler {
	return queries.NewListRestaurantOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAvailableOrdersQueryHandler() queries.ListAvailableOrdersQueryHandler {
	return queries.NewListAvailableOrdersQueryHandler(c.gormDB, c.config.AvailableOrdersRadiusKm)
}

func (c *CompositionRoot) CreateListRiderOrdersQueryHandler() queries.ListRiderOrdersQueryHandler {
	return queries.NewListRiderOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRiderLocationQueryHandler() queries.GetRiderLocationQueryHandler {
	return queries.NewGetRiderLocationQueryHandler(c.gormDB, c.config.LocationStaleAfter)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus:    c.CreateChangeOrderStatusCommandHandler(),
		AcceptOrder:          c.CreateAcceptOrderCommandHandler(),
		ReleaseOrder:         c.CreateReleaseOrderCommandHandler(),
		VerifyPin:            c.CreateVerifyPinCommandHandler(),
		ResetPinAttempts:     c.CreateResetPinAttemptsCommandHandler(),
		ReportLocation:       c.CreateReportLocationCommandHandler(),
		SetRiderAvailability: c.CreateSetRiderAvailabilityCommandHandler(),
		SetRiderCapacity:     c.CreateSetRiderCapacityCommandHandler(),

		GetOrder:             c.CreateGetOrderQueryHandler(),
		ListCustomerOrders:   c.CreateListCustomerOrdersQueryHandler(),
		ListRestaurantOrders: c.CreateListRestaurantOrdersQueryHandler(),
		ListAvailableOrders:  c.CreateListAvailableOrdersQueryHandler(),
		ListRiderOrders:      c.CreateListRiderOrdersQueryHandler(),
		GetRiderLocation:     c.CreateGetRiderLocationQueryHandler(),
	}, c.config.DeliveryCharge, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayOrderEventsCommandHandler(),
		c.CreateMarkIdleRidersOfflineCommandHandler(),
		jobs.Schedules{
			EventRelay:           c.config.EventRelaySchedule,
			EventRelayBatchSize:  c.config.EventRelayBatchSize,
			RiderPresence:        c.config.RiderPresenceSchedule,
			RiderPresenceTimeout: c.config.RiderPresenceTimeout,
		},
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

type FuncLocationUoWFactory func() commands.LocationUoW

func (f FuncLocationUoWFactory) Create() commands.LocationUoW {
	return f()
}

type FuncPresenceUoWFactory func() commands.PresenceUoW

func (f FuncPresenceUoWFactory) Create() commands.PresenceUoW {
	return f()
}

type FuncOrderEventUoWFactory func() commands.OrderEventUoW

func (f FuncOrderEventUoWFactory) Create() commands.OrderEventUoW {
	return f()
}
