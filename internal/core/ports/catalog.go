package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
)

// The catalog ports are read-only views of data owned by the wider
// platform (menu management, seller onboarding, address books — all
// outside the engine). The engine reads them fresh for every pricing
// decision; nothing from a catalog is cached across requests.

// Meal is the authoritative catalog row for a menu item.
type Meal struct {
	ID        kernel.UUID
	SellerID  kernel.UUID
	Name      string
	Price     float64
	Available bool
}

// Seller is the authoritative catalog row for a restaurant.
type Seller struct {
	ID      kernel.UUID
	Name    string
	Address string
	// DeliveryFee is nil when the seller has not configured one; the
	// dispatcher then falls back to the default payout.
	DeliveryFee *float64
}

// Address is a delivery address snapshot source.
type Address struct {
	ID        kernel.UUID
	UserID    kernel.UUID
	Text      string
	IsDefault bool
}

// MealCatalog resolves cart items to current catalog state.
type MealCatalog interface {
	// GetByIDs returns the meals for the given ids. A missing id is
	// reported as an ObjectNotFoundError, not silently dropped.
	GetByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]Meal, error)
}

// SellerCatalog resolves sellers, including the delivery fee read at
// order time.
type SellerCatalog interface {
	Get(ctx context.Context, id kernel.UUID) (Seller, error)
}

// AddressBook resolves delivery addresses.
type AddressBook interface {
	Get(ctx context.Context, id kernel.UUID) (Address, error)

	// EnsureDefault returns the user's default address, creating a
	// placeholder default when the user has none. Checkout without an
	// address reference goes through here.
	EnsureDefault(ctx context.Context, userID kernel.UUID) (Address, error)
}
