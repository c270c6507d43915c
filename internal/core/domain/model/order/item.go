package order

import (
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// Item is a line of an order with the meal name and price snapshotted
// at checkout. The snapshot is immutable: later menu edits or meal
// deletions never alter historical orders. The meal id is kept as a
// reference only and may become stale.
type Item struct {
	mealID   kernel.UUID
	mealName string
	price    float64
	quantity int
	subtotal float64
}

// NewItem creates an order line from the current catalog values.
// The subtotal is price x quantity, rounded half-up to cents.
func NewItem(mealID kernel.UUID, mealName string, price float64, quantity int) (Item, error) {
	if err := mealID.Validate(); err != nil {
		return Item{}, err
	}
	if mealName == "" {
		return Item{}, errs.NewValueIsRequiredError("mealName")
	}
	if price < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%.2f is negative", price))
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Item{
		mealID:   mealID,
		mealName: mealName,
		price:    kernel.RoundMoney(price),
		quantity: quantity,
		subtotal: kernel.RoundMoney(price * float64(quantity)),
	}, nil
}

// RestoreItem reconstructs a persisted order line without recomputing
// the snapshot.
func RestoreItem(mealID kernel.UUID, mealName string, price float64, quantity int, subtotal float64) Item {
	return Item{
		mealID:   mealID,
		mealName: mealName,
		price:    price,
		quantity: quantity,
		subtotal: subtotal,
	}
}

// MealID returns the catalog reference of the line.
func (i Item) MealID() kernel.UUID { return i.mealID }

// MealName returns the name snapshotted at checkout.
func (i Item) MealName() string { return i.mealName }

// Price returns the unit price snapshotted at checkout.
func (i Item) Price() float64 { return i.price }

// Quantity returns the ordered quantity.
func (i Item) Quantity() int { return i.quantity }

// Subtotal returns price x quantity for the line.
func (i Item) Subtotal() float64 { return i.subtotal }
