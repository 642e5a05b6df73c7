package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/smartcart-api/catalog"
	"github.com/junaidrashid-git/smartcart-api/checkout"
	"github.com/junaidrashid-git/smartcart-api/config"
	orderControllers "github.com/junaidrashid-git/smartcart-api/controllers/order"
	"github.com/junaidrashid-git/smartcart-api/jobs"
	"github.com/junaidrashid-git/smartcart-api/logger"
	"github.com/junaidrashid-git/smartcart-api/middleware"
	"github.com/junaidrashid-git/smartcart-api/models"
	"github.com/junaidrashid-git/smartcart-api/payment"
	"github.com/junaidrashid-git/smartcart-api/recommend"
	"github.com/junaidrashid-git/smartcart-api/routes"
	"github.com/junaidrashid-git/smartcart-api/session"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.Init(cfg.LogMode, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.S().Infow("starting application", "namespace", "main", "db_driver", cfg.DBDriver, "payment_mode", cfg.PaymentMode)

	// Init DB
	db := initDatabase(cfg)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		zap.S().Fatalf("AutoMigrate failed: %v", err)
	}

	ctx := context.Background()
	notifier := catalog.NewNotifier()
	store := catalog.NewGormStore(db, notifier)
	if cfg.SeedCatalog {
		n, err := catalog.Seed(ctx, store)
		if err != nil {
			zap.S().Fatalf("catalog seed failed: %v", err)
		}
		if n > 0 {
			zap.S().Infow("seeded demo catalog", "namespace", "main", "products", n)
		}
	}

	snapshot := catalog.NewSnapshot()
	refresher := catalog.NewRefresher(store, snapshot)
	if _, err := refresher.Refresh(ctx); err != nil {
		zap.S().Fatalf("initial catalog load failed: %v", err)
	}
	stopWatch, err := refresher.Watch(notifier)
	if err != nil {
		zap.S().Fatalf("failed to watch catalog: %v", err)
	}
	defer stopWatch()

	catalogFeed := orderControllers.NewHub("catalog")
	orderFeed := orderControllers.NewHub("orders")
	stopFeed, err := notifier.Subscribe(func(c catalog.Change) {
		catalogFeed.Broadcast(orderControllers.Message{Type: "catalog_changed", Data: c})
	})
	if err != nil {
		zap.S().Fatalf("failed to subscribe catalog feed: %v", err)
	}
	defer stopFeed()

	recorder := checkout.NewGormRecorder(store)
	sessions := session.NewManager(session.Deps{
		Catalog:      snapshot,
		Lookup:       store,
		Selector:     recommend.NewSelector(),
		Payment:      paymentStep(cfg),
		Recorder:     recorder,
		ScanCooldown: cfg.ScanCooldown,
		Currency:     cfg.GatewayCurrency,
		OnComplete: func(r checkout.Receipt) {
			orderFeed.Broadcast(orderControllers.Message{Type: "order_completed", Data: r})
		},
	}, cfg.SessionTTL)

	sched, err := jobs.New(cfg.CatalogResync, refresher, sessions)
	if err != nil {
		zap.S().Fatalf("init job error %s", err.Error())
	}
	sched.Start()

	// Gin setup
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "X-Catalog-Version", middleware.HeaderSessionToken, middleware.HeaderSessionExpires},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		Snapshot:    snapshot,
		Store:       store,
		Sessions:    sessions,
		Orders:      recorder,
		CatalogFeed: catalogFeed,
		OrderFeed:   orderFeed,
		JWTSecret:   cfg.JWTSecret,
		AdminAPIKey: cfg.AdminAPIKey,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		zap.S().Infof("server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.S().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.S().Errorf("server shutdown: %v", err)
	}
	sched.Stop(shutdownCtx)
	notifier.Wait()
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg config.Config) *gorm.DB {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	var dialector gorm.Dialector
	if cfg.DBDriver == "sqlite" {
		dialector = sqlite.Open(cfg.DSN())
	} else {
		dialector = postgres.Open(cfg.DSN())
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		zap.S().Fatalf("DB connection failed: %v", err)
	}
	return db
}

func paymentStep(cfg config.Config) payment.Step {
	if cfg.PaymentMode == "gateway" {
		return &payment.Gateway{
			URL:      cfg.GatewayURL,
			StoreID:  cfg.GatewayStoreID,
			AuthKey:  cfg.GatewayAuthKey,
			Currency: cfg.GatewayCurrency,
			TestMode: cfg.GinMode != gin.ReleaseMode,
		}
	}
	return payment.Simulated{Delay: cfg.PaymentDelay, Decline: cfg.PaymentDecline}
}
