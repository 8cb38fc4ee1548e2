package commands

import (
	"errors"
	"fmt"
	"slices"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order on behalf of a customer. Items carry
// the pricing snapshot taken at checkout; totals are derived from them once.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, kernel.NewUUID(), "restaurant-7", items, 6000, addr)
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor          order.Actor
	orderID        kernel.UUID
	restaurantID   string
	items          []order.Item
	deliveryCharge int64
	address        order.Address

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	actor order.Actor,
	orderID kernel.UUID,
	restaurantID string,
	items []order.Item,
	deliveryCharge int64,
	address order.Address,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setRestaurantID(restaurantID),
		cmd.setItems(items),
		cmd.setDeliveryCharge(deliveryCharge),
		cmd.setAddress(address),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() order.Actor     { return c.actor }
func (c CreateOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c CreateOrderCommand) RestaurantID() string   { return c.restaurantID }
func (c CreateOrderCommand) Items() []order.Item    { return slices.Clone(c.items) }
func (c CreateOrderCommand) DeliveryCharge() int64  { return c.deliveryCharge }
func (c CreateOrderCommand) Address() order.Address { return c.address }

func (c *CreateOrderCommand) setActor(actor order.Actor) error {
	if err := validateActor(actor); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("restaurant_id")
	}
	c.restaurantID = id
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = slices.Clone(items)
	return nil
}

func (c *CreateOrderCommand) setDeliveryCharge(charge int64) error {
	if charge < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery_charge", fmt.Errorf("%d is negative", charge))
	}
	c.deliveryCharge = charge
	return nil
}

func (c *CreateOrderCommand) setAddress(a order.Address) error {
	if err := a.Point().Validate(); err != nil {
		return errs.NewValueIsRequiredError("delivery_address")
	}
	c.address = a
	return nil
}
