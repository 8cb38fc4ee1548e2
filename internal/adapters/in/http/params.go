package http

import (
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

func pathOrderID(c echo.Context) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return kernel.UUIDFromBytes(id[:])
}

func pathRiderID(c echo.Context) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}

type listOrdersParams struct {
	Role     order.Role
	ScopeID  string
	Statuses []order.Status
}

// bindListOrdersParams reads role, scope_id and the exploded status list.
// scope_id defaults to the caller.
func bindListOrdersParams(c echo.Context, actor order.Actor) (listOrdersParams, error) {
	var (
		role     string
		scopeID  string
		statuses []string
	)
	query := c.QueryParams()
	if err := runtime.BindQueryParameter("form", true, true, "role", query, &role); err != nil {
		return listOrdersParams{}, errs.NewValueIsInvalidErrorWithCause("role", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "scope_id", query, &scopeID); err != nil {
		return listOrdersParams{}, errs.NewValueIsInvalidErrorWithCause("scope_id", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "status", query, &statuses); err != nil {
		return listOrdersParams{}, errs.NewValueIsInvalidErrorWithCause("status", err)
	}

	parsedRole, err := order.ParseRole(role)
	if err != nil {
		return listOrdersParams{}, err
	}
	if scopeID == "" {
		scopeID = actor.ID
	}

	params := listOrdersParams{Role: parsedRole, ScopeID: scopeID}
	for _, raw := range statuses {
		status, err := order.ParseStatus(raw)
		if err != nil {
			return listOrdersParams{}, err
		}
		params.Statuses = append(params.Statuses, status)
	}
	return params, nil
}
