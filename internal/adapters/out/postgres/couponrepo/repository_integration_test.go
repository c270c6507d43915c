package couponrepo_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/couponrepo"
	"fooddelivery/internal/core/domain/model/coupon"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CouponRepositoryIntegrationTestSuite verifies coupon lookups and the
// usage ledger against a real PostgreSQL instance.
type CouponRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *couponrepo.GormCouponRepository
}

func (suite *CouponRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&couponrepo.CouponDTO{}, &couponrepo.CouponUsageDTO{}))
	suite.repository = couponrepo.NewGormCouponRepository(db)
}

func (suite *CouponRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE coupons, coupon_usages").Error)
}

func (suite *CouponRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CouponRepositoryIntegrationTestSuite) seedCoupon(code string, sellerIDs ...kernel.UUID) kernel.UUID {
	id := kernel.NewUUID()
	now := time.Now().UTC()

	scope := pq.StringArray{}
	for _, sellerID := range sellerIDs {
		scope = append(scope, sellerID.String())
	}

	suite.Require().NoError(suite.db.Create(&couponrepo.CouponDTO{
		ID:                  id.Bytes(),
		Code:                code,
		DiscountType:        string(coupon.DiscountPercentage),
		DiscountValue:       10,
		MinOrderAmount:      100,
		MaxDiscountAmount:   20,
		ApplicableSellerIDs: scope,
		UsageLimit:          2,
		ValidFrom:           now.Add(-24 * time.Hour),
		ValidUntil:          now.Add(24 * time.Hour),
		IsActive:            true,
	}).Error)

	return id
}

func (suite *CouponRepositoryIntegrationTestSuite) newUsage(couponID kernel.UUID, orderID kernel.UUID) coupon.Usage {
	usage, err := coupon.NewUsage(couponID, orderID, kernel.NewUUID(), 14.00, time.Now().UTC())
	suite.Require().NoError(err)
	return usage
}

func (suite *CouponRepositoryIntegrationTestSuite) TestGetByCode() {
	ctx := context.Background()
	sellerID := kernel.NewUUID()
	couponID := suite.seedCoupon("SAVE10", sellerID)

	found, err := suite.repository.GetByCode(ctx, "SAVE10")

	suite.Require().NoError(err)
	suite.True(found.ID().IsEqual(couponID))
	suite.Equal("SAVE10", found.Code())
	suite.Equal(2, found.UsageLimit())
}

func (suite *CouponRepositoryIntegrationTestSuite) TestGetByCodeUnknown() {
	_, err := suite.repository.GetByCode(context.Background(), "NOPE")

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CouponRepositoryIntegrationTestSuite) TestCountUsagesFollowsLedger() {
	ctx := context.Background()
	couponID := suite.seedCoupon("SAVE10")
	otherID := suite.seedCoupon("OTHER5")

	suite.Require().NoError(suite.repository.AddUsage(ctx, suite.newUsage(couponID, kernel.NewUUID())))
	suite.Require().NoError(suite.repository.AddUsage(ctx, suite.newUsage(couponID, kernel.NewUUID())))
	suite.Require().NoError(suite.repository.AddUsage(ctx, suite.newUsage(otherID, kernel.NewUUID())))

	count, err := suite.repository.CountUsages(ctx, couponID)

	suite.Require().NoError(err)
	suite.Equal(2, count)
}

func (suite *CouponRepositoryIntegrationTestSuite) TestAddUsageRejectsDuplicateOrder() {
	ctx := context.Background()
	couponID := suite.seedCoupon("SAVE10")
	orderID := kernel.NewUUID()

	suite.Require().NoError(suite.repository.AddUsage(ctx, suite.newUsage(couponID, orderID)))

	err := suite.repository.AddUsage(ctx, suite.newUsage(couponID, orderID))

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConflict)
}

func (suite *CouponRepositoryIntegrationTestSuite) TestSellerScopeRoundTrips() {
	ctx := context.Background()
	sellerID := kernel.NewUUID()
	suite.seedCoupon("LOCAL10", sellerID)

	found, err := suite.repository.GetByCode(ctx, "LOCAL10")

	suite.Require().NoError(err)
	decision := found.Decide(150.00, kernel.NewUUID(), 0, time.Now().UTC())
	suite.False(decision.Accepted)

	decision = found.Decide(150.00, sellerID, 0, time.Now().UTC())
	suite.True(decision.Accepted)
	suite.InDelta(15.00, decision.DiscountAmount, 0.001)
}

func TestCouponRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CouponRepositoryIntegrationTestSuite))
}
