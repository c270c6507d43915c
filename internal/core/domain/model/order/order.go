package order

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the ordering engine. It carries the
// server-computed money breakdown, the immutable item snapshots, and
// the current position in the status graph.
//
// Money invariants, enforced at construction and on restore:
//   - totalAmount == subtotal + deliveryFee - discountAmount
//   - totalAmount >= 0
//   - discountAmount <= subtotal
//
// The subtotal is always derived from the item snapshots, never from
// client-submitted figures. The courier id is nil until exactly one
// courier claims the order; the claim itself is a conditional storage
// write (see the dispatcher), not an aggregate method, because the
// race is decided by the database.
type Order struct {
	id             kernel.UUID
	orderNumber    string
	userID         kernel.UUID
	sellerID       kernel.UUID
	courierID      *kernel.UUID
	addressID      kernel.UUID
	status         Status
	paymentMethod  string
	items          []Item
	subtotal       float64
	deliveryFee    float64
	discountAmount float64
	totalAmount    float64
	createdAt      time.Time
	updatedAt      time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a pending order from priced item snapshots.
//
// The subtotal is recomputed here as the sum of the line subtotals and
// rounded half-up to cents; the caller supplies only the delivery fee
// (read from the seller record at order time) and the already-decided
// discount. Construction fails when the money invariants would be
// violated or any identity is missing.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	userID kernel.UUID,
	sellerID kernel.UUID,
	addressID kernel.UUID,
	paymentMethod string,
	items []Item,
	deliveryFee float64,
	discountAmount float64,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status: StatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setUserID(userID),
		o.setSellerID(sellerID),
		o.setAddressID(addressID),
		o.setPaymentMethod(paymentMethod),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if deliveryFee < 0 {
		return nil, errs.NewValueIsInvalidError("deliveryFee")
	}

	subtotal := 0.0
	for _, item := range o.items {
		subtotal += item.Subtotal()
	}
	o.subtotal = kernel.RoundMoney(subtotal)
	o.deliveryFee = kernel.RoundMoney(deliveryFee)

	if discountAmount < 0 || discountAmount > o.subtotal {
		return nil, errs.NewValueIsInvalidErrorWithCause("discountAmount",
			fmt.Errorf("%.2f is negative or exceeds subtotal %.2f", discountAmount, o.subtotal))
	}
	o.discountAmount = kernel.RoundMoney(discountAmount)

	o.totalAmount = kernel.RoundMoney(o.subtotal + o.deliveryFee - o.discountAmount)
	if o.totalAmount < 0 {
		return nil, errs.NewValueIsInvalidError("totalAmount")
	}

	o.createdAt = now
	o.updatedAt = now
	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including the
// status, optional courier assignment and stored money breakdown. The
// money conservation invariant is re-verified so a partially written
// row never becomes a live aggregate.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	userID kernel.UUID,
	sellerID kernel.UUID,
	courierID *kernel.UUID,
	addressID kernel.UUID,
	status Status,
	paymentMethod string,
	items []Item,
	subtotal float64,
	deliveryFee float64,
	discountAmount float64,
	totalAmount float64,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setUserID(userID),
		o.setSellerID(sellerID),
		o.setAddressID(addressID),
		o.setPaymentMethod(paymentMethod),
		o.setItems(items),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		o.courierID = courierID
	}

	if kernel.RoundMoney(subtotal+deliveryFee-discountAmount) != kernel.RoundMoney(totalAmount) {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%.2f does not equal %.2f + %.2f - %.2f",
				totalAmount, subtotal, deliveryFee, discountAmount))
	}

	o.status = status
	o.subtotal = subtotal
	o.deliveryFee = deliveryFee
	o.discountAmount = discountAmount
	o.totalAmount = totalAmount
	o.createdAt = createdAt
	o.updatedAt = updatedAt
	return o, nil
}

// Validate ensures the Order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string { return o.orderNumber }

// UserID returns the buyer who placed the order.
func (o *Order) UserID() kernel.UUID { return o.userID }

// SellerID returns the single seller all items belong to.
func (o *Order) SellerID() kernel.UUID { return o.sellerID }

// CourierID returns the claiming courier, or nil while unassigned.
func (o *Order) CourierID() *kernel.UUID { return o.courierID }

// AddressID returns the delivery address reference.
func (o *Order) AddressID() kernel.UUID { return o.addressID }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PaymentMethod returns the payment method chosen at checkout.
func (o *Order) PaymentMethod() string { return o.paymentMethod }

// Items returns the immutable line snapshots.
func (o *Order) Items() []Item { return o.items }

// Subtotal returns the sum of the line subtotals.
func (o *Order) Subtotal() float64 { return o.subtotal }

// DeliveryFee returns the fee read from the seller at order time.
func (o *Order) DeliveryFee() float64 { return o.deliveryFee }

// DiscountAmount returns the applied coupon discount.
func (o *Order) DiscountAmount() float64 { return o.discountAmount }

// TotalAmount returns subtotal + deliveryFee - discountAmount.
func (o *Order) TotalAmount() float64 { return o.totalAmount }

// CreatedAt returns the checkout timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// ChangeStatusBy advances the order on behalf of an authenticated
// actor, enforcing both edge legality and the actor's transition
// rights:
//
//   - the seller owning the order drives it up through ready, and may
//     cancel before a courier claims it
//   - the buyer who placed the order may cancel it before it is ready
//     for pickup handoff
//   - only the courier holding courierID completes on_delivery ->
//     delivered
//   - on_delivery is never entered through this method: the claim is a
//     conditional storage write owned by the dispatcher
//
// Rights violations return a NotAuthorizedError; illegal edges a
// ConflictError naming the edge.
func (o *Order) ChangeStatusBy(role Role, actorID kernel.UUID, next Status, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if next == StatusOnDelivery {
		return errs.NewNotAuthorizedError("orders enter on_delivery only through a courier claim")
	}

	switch role {
	case RoleSeller:
		if !o.sellerID.IsEqual(actorID) {
			return errs.NewNotAuthorizedError("order belongs to another seller")
		}
		if next == StatusDelivered {
			return errs.NewNotAuthorizedError("only the assigned courier may mark an order delivered")
		}
	case RoleBuyer:
		if !o.userID.IsEqual(actorID) {
			return errs.NewNotAuthorizedError("order belongs to another user")
		}
		if next != StatusCancelled {
			return errs.NewNotAuthorizedError("buyers may only cancel their orders")
		}
	case RoleCourier:
		if next != StatusDelivered {
			return errs.NewNotAuthorizedError("couriers may only complete deliveries")
		}
		if o.courierID == nil || !o.courierID.IsEqual(actorID) {
			return errs.NewNotAuthorizedError("order is assigned to another courier")
		}
	case RoleAdmin:
		// Admin may drive any legal edge.
	default:
		return errs.NewNotAuthorizedError(fmt.Sprintf("unknown role %q", role))
	}

	return o.transition(next, now)
}

// MarkDelivered completes the order on behalf of its claiming courier.
// Used by task completion; enforces courier ownership.
func (o *Order) MarkDelivered(courierID kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.courierID == nil || !o.courierID.IsEqual(courierID) {
		return errs.NewNotAuthorizedError("order is assigned to another courier")
	}
	return o.transition(StatusDelivered, now)
}

// RestoreClaim applies an already-committed claim to the in-memory
// aggregate so post-claim logic (task creation, events) sees the
// assigned state. The authoritative claim lives in storage.
func (o *Order) RestoreClaim(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(StatusOnDelivery)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	o.updatedAt = now
	return nil
}

// IsClaimable reports whether the order is ready and unassigned.
func (o *Order) IsClaimable() bool {
	return o.status == StatusReady && o.courierID == nil
}

func (o *Order) transition(next Status, now time.Time) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	o.sellerID = sellerID
	return nil
}

func (o *Order) setAddressID(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}
	o.addressID = addressID
	return nil
}

func (o *Order) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("paymentMethod")
	}
	o.paymentMethod = paymentMethod
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = items
	return nil
}

// NewOrderNumber builds a human-readable order number from a timestamp
// and a random suffix. Practically unique, not cryptographically so;
// a uniqueness constraint on the column catches the rare collision.
func NewOrderNumber(now time.Time, rng *rand.Rand) string {
	return fmt.Sprintf("ORD-%s-%04d", now.Format("20060102150405"), rng.Intn(10000))
}
