package commands

import (
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

func validateActor(actor order.Actor) error {
	_, err := order.NewActor(actor.ID, actor.Role)
	return err
}

// requireRole fails with Unauthorized unless actor has one of roles.
func requireRole(actor order.Actor, action string, roles ...order.Role) error {
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}
	return errs.NewUnauthorizedError(actor.Role.String(), action)
}

// requireSelfOrOperator lets riders act on their own record and operators on
// anyone's.
func requireSelfOrOperator(actor order.Actor, riderID, action string) error {
	if actor.Role == order.RoleOperator {
		return nil
	}
	if actor.Role == order.RoleRider && actor.ID == riderID {
		return nil
	}
	return errs.NewUnauthorizedError(actor.Role.String(), action)
}
