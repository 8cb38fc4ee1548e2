package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance: health and swagger routes are public,
// everything under /api/v1 needs a bearer token signed with jwtSecret.
func NewRouter(ctx context.Context, s *Server, jwtSecret []byte) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	if err = registerSwagger(doc); err != nil {
		return nil, err
	}
	validateRequest, err := s.requestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			s.logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1", jwtMiddleware(jwtSecret), requireActor, validateRequest)

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.ListOrders)
	v1.GET("/orders/:id", s.GetOrder)
	v1.PATCH("/orders/:id/status", s.ChangeOrderStatus)
	v1.PATCH("/orders/:id/verify-rider-pin", s.VerifyRiderPin)
	v1.PATCH("/orders/:id/verify-customer-pin", s.VerifyCustomerPin)
	v1.POST("/orders/:id/assign", s.AssignOrder)
	v1.POST("/orders/:id/release", s.ReleaseOrder)
	v1.POST("/orders/:id/pin-attempts/reset", s.ResetPinAttempts)

	v1.GET("/riders/:id/orders", s.ListRiderOrders)
	v1.PUT("/riders/:id/availability", s.SetRiderAvailability)
	v1.PUT("/riders/:id/capacity", s.SetRiderCapacity)
	v1.POST("/riders/:id/location", s.ReportLocation)
	v1.GET("/riders/:id/location", s.GetRiderLocation)

	return e, nil
}
