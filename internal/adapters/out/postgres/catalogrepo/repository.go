package catalogrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// placeholderAddressText marks a default address auto-created at
// checkout for a buyer who never saved one. Support resolves these
// before handoff to a courier.
const placeholderAddressText = "address to be confirmed"

// GormMealCatalog implements ports.MealCatalog using GORM.
type GormMealCatalog struct {
	db *gorm.DB
}

// NewGormMealCatalog creates a GORM-backed meal catalog.
func NewGormMealCatalog(db *gorm.DB) *GormMealCatalog {
	return &GormMealCatalog{db: db}
}

// GetByIDs resolves the given meal ids. Every requested id must exist;
// a stale cart referencing a deleted meal is reported, not skipped.
func (c *GormMealCatalog) GetByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.Meal, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []MealDTO
	if err := c.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	meals := make(map[kernel.UUID]ports.Meal, len(dtos))
	for _, dto := range dtos {
		meal, err := mealToPort(dto)
		if err != nil {
			return nil, err
		}
		meals[meal.ID] = meal
	}

	for _, id := range ids {
		if _, ok := meals[id]; !ok {
			return nil, errs.NewObjectNotFoundError("meal", id.String())
		}
	}

	return meals, nil
}

// GormSellerCatalog implements ports.SellerCatalog using GORM.
type GormSellerCatalog struct {
	db *gorm.DB
}

// NewGormSellerCatalog creates a GORM-backed seller catalog.
func NewGormSellerCatalog(db *gorm.DB) *GormSellerCatalog {
	return &GormSellerCatalog{db: db}
}

// Get retrieves a seller by ID.
func (c *GormSellerCatalog) Get(ctx context.Context, id kernel.UUID) (ports.Seller, error) {
	if err := id.Validate(); err != nil {
		return ports.Seller{}, err
	}

	var dto SellerDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Seller{}, errs.NewObjectNotFoundError("seller", id.String())
		}
		return ports.Seller{}, err
	}

	return sellerToPort(dto)
}

// GormAddressBook implements ports.AddressBook using GORM.
type GormAddressBook struct {
	db *gorm.DB
}

// NewGormAddressBook creates a GORM-backed address book.
func NewGormAddressBook(db *gorm.DB) *GormAddressBook {
	return &GormAddressBook{db: db}
}

// Get retrieves an address by ID.
func (b *GormAddressBook) Get(ctx context.Context, id kernel.UUID) (ports.Address, error) {
	if err := id.Validate(); err != nil {
		return ports.Address{}, err
	}

	var dto AddressDTO
	if err := b.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Address{}, errs.NewObjectNotFoundError("address", id.String())
		}
		return ports.Address{}, err
	}

	return addressToPort(dto)
}

// EnsureDefault returns the user's default address, creating a
// placeholder default when none exists so checkout never dead-ends on
// a missing address.
func (b *GormAddressBook) EnsureDefault(ctx context.Context, userID kernel.UUID) (ports.Address, error) {
	if err := userID.Validate(); err != nil {
		return ports.Address{}, err
	}

	var dto AddressDTO
	err := b.db.WithContext(ctx).First(&dto, "user_id = ? AND is_default = true", userID.Bytes()).Error
	if err == nil {
		return addressToPort(dto)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Address{}, err
	}

	dto = AddressDTO{
		ID:          kernel.NewUUID().Bytes(),
		UserID:      userID.Bytes(),
		AddressText: placeholderAddressText,
		IsDefault:   true,
	}
	if err = b.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return ports.Address{}, err
	}

	return addressToPort(dto)
}
