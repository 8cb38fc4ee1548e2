package order

import (
	"errors"

	"orderflow/internal/pkg/errs"
)

const (
	MaxItemQuantity = 100
	MaxDiscount     = 100
)

// Item is one priced line of the order, frozen at placement. Prices are in
// minor currency units.
type Item struct {
	foodID             string
	name               string
	quantity           int
	unitPrice          int64
	discountPercentage int
}

func NewItem(foodID, name string, quantity int, unitPrice int64, discountPercentage int) (Item, error) {
	var it Item
	if err := errors.Join(
		it.setFoodID(foodID),
		it.setName(name),
		it.setQuantity(quantity),
		it.setUnitPrice(unitPrice),
		it.setDiscount(discountPercentage),
	); err != nil {
		return Item{}, err
	}
	return it, nil
}

func (i Item) FoodID() string          { return i.foodID }
func (i Item) Name() string            { return i.name }
func (i Item) Quantity() int           { return i.quantity }
func (i Item) UnitPrice() int64        { return i.unitPrice }
func (i Item) DiscountPercentage() int { return i.discountPercentage }

// LineTotal applies the discount to quantity*unitPrice, rounding half up.
func (i Item) LineTotal() int64 {
	gross := i.unitPrice * int64(i.quantity)
	return (gross*int64(MaxDiscount-i.discountPercentage) + MaxDiscount/2) / MaxDiscount
}

func (i *Item) setFoodID(foodID string) error {
	if foodID == "" {
		return errs.NewValueIsRequiredError("food_id")
	}
	i.foodID = foodID
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxItemQuantity)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice int64) error {
	if unitPrice < 0 {
		return errs.NewValueIsOutOfRangeError("unit_price", unitPrice, 0, "unbounded")
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *Item) setDiscount(discount int) error {
	if discount < 0 || discount > MaxDiscount {
		return errs.NewValueIsOutOfRangeError("discount_percentage", discount, 0, MaxDiscount)
	}
	i.discountPercentage = discount
	return nil
}
