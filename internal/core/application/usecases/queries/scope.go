package queries

import (
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// requireScope lets an actor list its own records; operators list anyone's.
func requireScope(actor order.Actor, role order.Role, scopeID, action string) error {
	if actor.Role == order.RoleOperator {
		return nil
	}
	if actor.Role == role && actor.ID == scopeID {
		return nil
	}
	return errs.NewUnauthorizedError(actor.Role.String(), action)
}

func newScopedQuery(actor order.Actor, scopeID, param string) error {
	if _, err := order.NewActor(actor.ID, actor.Role); err != nil {
		return err
	}
	if scopeID == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
