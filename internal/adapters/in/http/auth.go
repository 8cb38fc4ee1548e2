package http

import (
	"errors"
	"net/http"

	"orderflow/internal/core/domain/model/order"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	tokenContextKey = "user"
	actorContextKey = "actor"
)

// Claims is the bearer token payload. Subject carries the actor id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func jwtMiddleware(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    secret,
		SigningMethod: echojwt.AlgorithmHS256,
		ContextKey:    tokenContextKey,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return unauthorized(c, "missing or invalid token")
		},
	})
}

// requireActor turns validated claims into an order.Actor. The system role is
// reserved for scheduled jobs and never accepted from a token.
func requireActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get(tokenContextKey).(*jwt.Token)
		if !ok {
			return unauthorized(c, "missing token")
		}
		claims, ok := token.Claims.(*Claims)
		if !ok {
			return unauthorized(c, "unexpected claims")
		}

		role, err := order.ParseRole(claims.Role)
		if err != nil || role == order.RoleSystem {
			return unauthorized(c, "invalid role claim")
		}
		actor, err := order.NewActor(claims.Subject, role)
		if err != nil {
			return unauthorized(c, "invalid subject claim")
		}

		c.Set(actorContextKey, actor)
		return next(c)
	}
}

func actorFrom(c echo.Context) (order.Actor, error) {
	actor, ok := c.Get(actorContextKey).(order.Actor)
	if !ok {
		return order.Actor{}, errors.New("actor missing from request context")
	}
	return actor, nil
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: message})
}
