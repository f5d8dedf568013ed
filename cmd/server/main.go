package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/cashewtrade/marketplace/internal/cache"
	"github.com/cashewtrade/marketplace/internal/es"
	"github.com/cashewtrade/marketplace/internal/events"
	"github.com/cashewtrade/marketplace/internal/httpserver"
	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/repo"
	"github.com/cashewtrade/marketplace/internal/service"
	"github.com/cashewtrade/marketplace/internal/storage"
	"github.com/cashewtrade/marketplace/pkg/config"
	pkgdb "github.com/cashewtrade/marketplace/pkg/db"
	"github.com/cashewtrade/marketplace/pkg/logging"
	loggingmw "github.com/cashewtrade/marketplace/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.JWTRefreshSecret, "JWT_REFRESH_SECRET")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}

	// Kafka, elasticsearch and redis are optional; the server runs without
	// them and the services skip the matching side effects.
	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
	}

	var index *es.ProductIndex
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		index = &es.ProductIndex{Client: esClient, Index: cfg.ESIndex}
	}

	var catalogCache *cache.CatalogCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		catalogCache = cache.NewCatalogCache(rdb, 5*time.Minute)
		defer rdb.Close()
	}

	store, err := storage.NewFSStore(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	authSvc := &service.AuthService{Repo: gormRepo, JWTSecret: cfg.JWTAccessSecret, RefreshSecret: cfg.JWTRefreshSecret}
	catalogSvc := &service.CatalogService{Repo: gormRepo, Cache: catalogCache, Index: index, Producer: producer}
	checkoutSvc := &service.CheckoutService{Repo: gormRepo, Producer: producer}
	assignmentSvc := &service.AssignmentService{Repo: gormRepo, Producer: producer}
	orderSvc := &service.OrderService{Repo: gormRepo}
	paymentSvc := &service.PaymentService{Repo: gormRepo}
	profileSvc := &service.ProfileService{Repo: gormRepo}
	analyticsSvc := &service.AnalyticsService{Repo: gormRepo}
	notificationSvc := &service.NotificationService{Repo: gormRepo}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	e.Static(cfg.MediaBaseURL, cfg.MediaDir)

	httpserver.Register(e, &httpserver.Deps{
		Auth:         &httpserver.AuthHTTP{Svc: authSvc},
		Product:      &httpserver.ProductHTTP{Svc: catalogSvc},
		Checkout:     &httpserver.CheckoutHTTP{Svc: checkoutSvc},
		Order:        &httpserver.OrderHTTP{Svc: orderSvc},
		Assignment:   &httpserver.AssignmentHTTP{Svc: assignmentSvc},
		Payment:      &httpserver.PaymentHTTP{Svc: paymentSvc},
		Profile:      &httpserver.ProfileHTTP{Svc: profileSvc},
		Analytics:    &httpserver.AnalyticsHTTP{Svc: analyticsSvc},
		Notification: &httpserver.NotificationHTTP{Svc: notificationSvc},
		Upload:       &httpserver.UploadHTTP{Store: store},
		JWTSecret:    cfg.JWTAccessSecret,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.ServiceName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Printf("%s stopped", cfg.ServiceName)
}
