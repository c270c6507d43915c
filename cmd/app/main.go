package main

import (
	"fmt"
	"log/slog"
	"os"

	"fooddelivery/cmd"
	httpserver "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/kafka"
	"fooddelivery/internal/adapters/out/postgres/catalogrepo"
	"fooddelivery/internal/adapters/out/postgres/couponrepo"
	"fooddelivery/internal/adapters/out/postgres/courierrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/taskrepo"
	"fooddelivery/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config, err := cmd.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := gorm.Open(postgresdriver.Open(config.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err = migrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	publisher := kafka.NewOrderEventPublisher(config.BrokerList(), config.KafkaOrderEventsTopic)
	defer func() { _ = publisher.Close() }()

	root := cmd.NewCompositionRoot(config, db, publisher, logger)

	assignHandler := root.CreateAssignCourierCommandHandler()
	dispatchHandler := root.CreateDispatchReadyOrdersCommandHandler(&assignHandler)

	jobManager := jobs.NewJobManager(dispatchHandler, config.DispatchSchedule, logger)
	if err = jobManager.StartAll(); err != nil {
		logger.Error("failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	server := httpserver.NewServer(
		root.CreateCheckoutCommandHandler(),
		root.CreateChangeOrderStatusCommandHandler(&assignHandler),
		assignHandler,
		root.CreateAcceptOrderCommandHandler(),
		root.CreatePickupTaskCommandHandler(),
		root.CreateCompleteTaskCommandHandler(),
		root.CreateRegisterCourierCommandHandler(),
		root.CreateSetCourierStatusCommandHandler(),
		root.CreateGetOrdersQueryHandler(),
		root.CreateGetAvailableOrdersQueryHandler(),
		root.CreateValidateCouponQueryHandler(),
		root.CreateGetCourierEarningsQueryHandler(),
		logger,
	)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)))
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{},
		&courierrepo.CourierDTO{}, &taskrepo.TaskDTO{},
		&couponrepo.CouponDTO{}, &couponrepo.CouponUsageDTO{},
		&catalogrepo.MealDTO{}, &catalogrepo.SellerDTO{}, &catalogrepo.AddressDTO{},
	)
}
