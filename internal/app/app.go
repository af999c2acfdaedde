package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	segmentio "github.com/segmentio/kafka-go"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/warunggenz/pos-backend/config"
	"github.com/warunggenz/pos-backend/internal/controller"
	"github.com/warunggenz/pos-backend/internal/infrastructure/message-queue/kafka"
	paymentgateway "github.com/warunggenz/pos-backend/internal/infrastructure/payment-gateway"
	"github.com/warunggenz/pos-backend/internal/infrastructure/tracing"
	localmiddleware "github.com/warunggenz/pos-backend/internal/middleware"
	"github.com/warunggenz/pos-backend/internal/repository"
	"github.com/warunggenz/pos-backend/internal/service"
	pkgdto "github.com/warunggenz/pos-backend/pkg/dto"
)

type App struct {
	DB     *sqlx.DB
	Config *config.Config
	Server *echo.Echo
}

func (app *App) Start() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	e := echo.New()
	app.Server = e

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize tracing")
	}

	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown tracing")
		}
	}()

	tracer := traceProvider.Tracer("pos-backend")

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// span creation and naming
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			// add the context to the request
			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	g := e.Group("/api/v1")
	g.Use(localmiddleware.Logger)

	g.GET("/ping", func(c echo.Context) error {
		return pkgdto.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	var kafkaProducer *segmentio.Conn
	if app.Config.KafkaConfig.BrokerAddress != "" {
		kafkaProducer = kafka.CreateKafkaProducer(app.Config)
	}

	midtransGateway := paymentgateway.CreateMidtransGateway(app.Config)

	isLoggedIn := localmiddleware.JWTAuth(app.Config.JWTSecret)
	optionalAuth := localmiddleware.OptionalJWTAuth(app.Config.JWTSecret)

	transactionRepo := repository.CreateTransactionRepository(app.DB)
	productRepo := repository.CreateProductRepository(app.DB)
	reportRepo := repository.CreateReportRepository(app.DB)

	orderSvc := service.CreateOrderService(transactionRepo, midtransGateway, kafkaProducer, app.Config)
	catalogSvc := service.CreateCatalogService(productRepo)
	reportSvc := service.CreateReportService(reportRepo)

	controller.CreateOrderController(g, orderSvc, isLoggedIn, optionalAuth)
	controller.CreateCatalogController(g, catalogSvc)
	controller.CreateReportController(g, reportSvc, isLoggedIn)

	s, err := gocron.NewScheduler()
	if err != nil {
		panic(err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			10*time.Minute,
		),
		gocron.NewTask(
			orderSvc.ExpireStalePayments,
		),
	)
	if err != nil {
		panic(err)
	}

	s.Start()

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)))
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.Server.Shutdown(ctx)
}
