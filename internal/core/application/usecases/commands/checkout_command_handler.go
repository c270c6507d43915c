package commands

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"fooddelivery/internal/core/domain/model/coupon"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// CheckoutCommandHandler prices and persists a new order. All pricing
// inputs are read server-side inside one transaction: meal prices and
// availability from the catalog, the delivery fee from the seller
// record, the discount from the coupon validator. The client never
// supplies a price the server trusts.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	publisher  ports.OrderEventPublisher
	rng        *rand.Rand
	rngMu      *sync.Mutex
	logger     *slog.Logger
}

// NewCheckoutCommandHandler creates a handler for order intake. The rng
// feeds order number generation and may be seeded in tests; nil falls
// back to a time-seeded source. A nil logger falls back to the default.
func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	publisher ports.OrderEventPublisher,
	rng *rand.Rand,
	logger *slog.Logger,
) CheckoutCommandHandler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		rng:        rng,
		rngMu:      &sync.Mutex{},
		logger:     logger,
	}
}

// Handle processes the checkout command. The order, its item snapshots
// and the coupon redemption commit or roll back together; the created
// event goes out only after the commit succeeds.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	items, sellerID, err := h.priceCart(ctx, uow, cmd.Lines())
	if err != nil {
		return nil, err
	}

	seller, err := uow.SellerCatalog().Get(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	deliveryFee := 0.0
	if seller.DeliveryFee != nil {
		deliveryFee = *seller.DeliveryFee
	}

	address, err := h.resolveAddress(ctx, uow, cmd)
	if err != nil {
		return nil, err
	}

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Subtotal()
	}
	subtotal = kernel.RoundMoney(subtotal)

	orderID := kernel.NewUUID()
	discount, redeem, err := h.applyCoupon(ctx, uow, cmd, orderID, sellerID, subtotal, now)
	if err != nil {
		return nil, err
	}

	// The rng is shared across concurrent requests and rand.Rand is
	// not safe for concurrent use.
	h.rngMu.Lock()
	orderNumber := order.NewOrderNumber(now, h.rng)
	h.rngMu.Unlock()

	aggregate, err := order.NewOrder(
		orderID,
		orderNumber,
		cmd.UserID(),
		sellerID,
		address.ID,
		cmd.PaymentMethod(),
		items,
		deliveryFee,
		discount,
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if redeem != nil {
		if err = uow.CouponRepository().AddUsage(ctx, *redeem); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.reportEstimateDrift(cmd, aggregate)
	publishStatusChanged(ctx, h.publisher, h.logger, aggregate)

	return aggregate, nil
}

// priceCart resolves every cart line against the live catalog and
// builds the immutable item snapshots. Rejects carts spanning more
// than one seller and carts referencing unavailable meals.
func (h *CheckoutCommandHandler) priceCart(
	ctx context.Context,
	uow CheckoutUoW,
	lines []CartLine,
) ([]order.Item, kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.MealID)
	}

	meals, err := uow.MealCatalog().GetByIDs(ctx, ids)
	if err != nil {
		return nil, kernel.UUID{}, err
	}

	var sellerID kernel.UUID
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		meal, ok := meals[line.MealID]
		if !ok {
			return nil, kernel.UUID{}, errs.NewObjectNotFoundError("mealID", line.MealID)
		}
		if !meal.Available {
			return nil, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("cart",
				fmt.Errorf("meal %s is currently unavailable", meal.Name))
		}
		if sellerID.Validate() != nil {
			sellerID = meal.SellerID
		} else if !sellerID.IsEqual(meal.SellerID) {
			return nil, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("cart",
				fmt.Errorf("all items must belong to a single seller"))
		}

		item, err := order.NewItem(meal.ID, meal.Name, meal.Price, line.Quantity)
		if err != nil {
			return nil, kernel.UUID{}, err
		}
		items = append(items, item)
	}

	return items, sellerID, nil
}

// resolveAddress returns the requested address after an ownership
// check, or the buyer's default when the command carries no reference.
func (h *CheckoutCommandHandler) resolveAddress(
	ctx context.Context,
	uow CheckoutUoW,
	cmd CheckoutCommand,
) (ports.Address, error) {
	if cmd.AddressID() == nil {
		return uow.AddressBook().EnsureDefault(ctx, cmd.UserID())
	}

	address, err := uow.AddressBook().Get(ctx, *cmd.AddressID())
	if err != nil {
		return ports.Address{}, err
	}
	if !address.UserID.IsEqual(cmd.UserID()) {
		return ports.Address{}, errs.NewNotAuthorizedError("use another user's address")
	}
	return address, nil
}

// applyCoupon validates the coupon against the priced subtotal and
// prepares the redemption record. A rejected coupon fails the whole
// checkout; the buyer fixes the cart or drops the code.
func (h *CheckoutCommandHandler) applyCoupon(
	ctx context.Context,
	uow CheckoutUoW,
	cmd CheckoutCommand,
	orderID kernel.UUID,
	sellerID kernel.UUID,
	subtotal float64,
	now time.Time,
) (float64, *coupon.Usage, error) {
	if cmd.CouponCode() == "" {
		return 0, nil, nil
	}

	// GetByCode locks the coupon row until commit, so the usage count
	// below cannot be raced past the limit by a concurrent checkout.
	coup, err := uow.CouponRepository().GetByCode(ctx, cmd.CouponCode())
	if err != nil {
		return 0, nil, err
	}

	usageCount, err := uow.CouponRepository().CountUsages(ctx, coup.ID())
	if err != nil {
		return 0, nil, err
	}

	decision := coup.Decide(subtotal, sellerID, usageCount, now)
	if !decision.Accepted {
		return 0, nil, errs.NewValueIsInvalidErrorWithCause("couponCode",
			fmt.Errorf("%s", decision.Reason))
	}

	usage, err := coupon.NewUsage(coup.ID(), orderID, cmd.UserID(), decision.DiscountAmount, now)
	if err != nil {
		return 0, nil, err
	}
	return decision.DiscountAmount, &usage, nil
}

// reportEstimateDrift logs when the client-side total estimate and the
// server total disagree by more than half a cent. The server total
// always wins; the log line exists to catch frontend pricing drift.
func (h *CheckoutCommandHandler) reportEstimateDrift(cmd CheckoutCommand, aggregate *order.Order) {
	if cmd.ClientTotal() == nil {
		return
	}
	if math.Abs(*cmd.ClientTotal()-aggregate.TotalAmount()) <= 0.005 {
		return
	}
	h.logger.Warn("client total estimate differs from server total",
		"order_number", aggregate.OrderNumber(),
		"client_total", *cmd.ClientTotal(),
		"server_total", aggregate.TotalAmount(),
	)
}
