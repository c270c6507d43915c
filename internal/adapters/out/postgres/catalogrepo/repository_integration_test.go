package catalogrepo_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/catalogrepo"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CatalogIntegrationTestSuite verifies the read-side catalog adapters
// against a real PostgreSQL instance.
type CatalogIntegrationTestSuite struct {
	suite.Suite
	container   *postgres.PostgresContainer
	db          *gorm.DB
	meals       *catalogrepo.GormMealCatalog
	sellers     *catalogrepo.GormSellerCatalog
	addressBook *catalogrepo.GormAddressBook
}

func (suite *CatalogIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&catalogrepo.MealDTO{}, &catalogrepo.SellerDTO{}, &catalogrepo.AddressDTO{},
	))
	suite.meals = catalogrepo.NewGormMealCatalog(db)
	suite.sellers = catalogrepo.NewGormSellerCatalog(db)
	suite.addressBook = catalogrepo.NewGormAddressBook(db)
}

func (suite *CatalogIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE meals, sellers, addresses").Error)
}

func (suite *CatalogIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CatalogIntegrationTestSuite) seedMeal(sellerID kernel.UUID, name string, price float64) kernel.UUID {
	id := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&catalogrepo.MealDTO{
		ID:        id.Bytes(),
		SellerID:  sellerID.Bytes(),
		Name:      name,
		Price:     price,
		Available: true,
	}).Error)
	return id
}

func (suite *CatalogIntegrationTestSuite) TestGetMealsByIDs() {
	ctx := context.Background()
	sellerID := kernel.NewUUID()
	padThaiID := suite.seedMeal(sellerID, "Pad Thai", 140.00)
	curryID := suite.seedMeal(sellerID, "Green Curry", 160.00)

	meals, err := suite.meals.GetByIDs(ctx, []kernel.UUID{padThaiID, curryID})

	suite.Require().NoError(err)
	suite.Require().Len(meals, 2)
	suite.Equal("Pad Thai", meals[padThaiID].Name)
	suite.InDelta(160.00, meals[curryID].Price, 0.001)
	suite.True(meals[padThaiID].SellerID.IsEqual(sellerID))
}

func (suite *CatalogIntegrationTestSuite) TestGetMealsByIDsReportsMissing() {
	ctx := context.Background()
	padThaiID := suite.seedMeal(kernel.NewUUID(), "Pad Thai", 140.00)

	_, err := suite.meals.GetByIDs(ctx, []kernel.UUID{padThaiID, kernel.NewUUID()})

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CatalogIntegrationTestSuite) TestGetSeller() {
	ctx := context.Background()
	fee := 15.00
	id := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&catalogrepo.SellerDTO{
		ID:          id.Bytes(),
		Name:        "Thai Garden",
		Address:     "1 Market Street",
		DeliveryFee: &fee,
	}).Error)

	seller, err := suite.sellers.Get(ctx, id)

	suite.Require().NoError(err)
	suite.Equal("Thai Garden", seller.Name)
	suite.Equal("1 Market Street", seller.Address)
	suite.Require().NotNil(seller.DeliveryFee)
	suite.InDelta(15.00, *seller.DeliveryFee, 0.001)
}

func (suite *CatalogIntegrationTestSuite) TestGetSellerNotFound() {
	_, err := suite.sellers.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CatalogIntegrationTestSuite) TestEnsureDefaultReturnsExisting() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&catalogrepo.AddressDTO{
		ID:          kernel.NewUUID().Bytes(),
		UserID:      userID.Bytes(),
		AddressText: "22 Elm Road",
		IsDefault:   true,
	}).Error)

	address, err := suite.addressBook.EnsureDefault(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal("22 Elm Road", address.Text)
	suite.True(address.UserID.IsEqual(userID))
}

func (suite *CatalogIntegrationTestSuite) TestEnsureDefaultCreatesPlaceholder() {
	ctx := context.Background()
	userID := kernel.NewUUID()

	address, err := suite.addressBook.EnsureDefault(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal("address to be confirmed", address.Text)
	suite.True(address.IsDefault)

	again, err := suite.addressBook.EnsureDefault(ctx, userID)
	suite.Require().NoError(err)
	suite.True(again.ID.IsEqual(address.ID))
}

func TestCatalogIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogIntegrationTestSuite))
}
