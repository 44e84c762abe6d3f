package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jewelryorders/cmd"
	httpin "jewelryorders/internal/adapters/in/http"
	kafkaout "jewelryorders/internal/adapters/out/kafka"
	minioout "jewelryorders/internal/adapters/out/minio"
	"jewelryorders/internal/adapters/out/postgres"
	redisout "jewelryorders/internal/adapters/out/redis"
	"jewelryorders/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	infra, closeInfra := buildInfrastructure(ctx, configs, logger)
	defer closeInfra()

	app := cmd.NewCompositionRoot(configs, gormDB, infra)
	go app.Hub().Run(ctx)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort, logger)
}

// buildInfrastructure connects the optional redis and kafka clients and the
// image bucket. The returned func closes what was opened.
func buildInfrastructure(ctx context.Context, configs cmd.Config, logger *slog.Logger) (cmd.Infrastructure, func()) {
	infra := cmd.Infrastructure{Logger: logger}
	var closers []func() error

	if configs.RedisAddr != "" {
		rdb := redisout.NewClient(configs.RedisAddr)
		closers = append(closers, rdb.Close)
		infra.Cache = redisout.NewStatusCache(rdb, configs.StatusCacheTTL)
	} else {
		logger.Warn("REDIS_ADDR not set, order status cache disabled")
	}

	if len(configs.KafkaBrokers) > 0 {
		producer := kafkaout.NewNotificationProducer(configs.KafkaBrokers, configs.KafkaNotificationsTopic)
		closers = append(closers, producer.Close)
		infra.Events = producer
	} else {
		logger.Warn("KAFKA_BROKERS not set, notification events are not exported")
	}

	images, err := minioout.NewImageStore(minioout.Options{
		Endpoint:  configs.MinioEndpoint,
		AccessKey: configs.MinioAccessKey,
		SecretKey: configs.MinioSecretKey,
		Bucket:    configs.MinioBucket,
		UseSSL:    configs.MinioUseSSL,
	}, kernel.SystemClock)
	if err != nil {
		log.Fatalf("image store: %v", err)
	}
	bucketCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = images.EnsureBucket(bucketCtx); err != nil {
		log.Fatalf("image store: %v", err)
	}
	infra.Images = images

	return infra, func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("failed to close client", "error", err)
			}
		}
	}
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpin.ErrorHandler(logger)
	e.Use(middleware.Recover())
	app.CreateServer().Register(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}
