package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/shopmart-io/shopmart-backend/api/routes"
	cartsvc "github.com/shopmart-io/shopmart-backend/internal/carts"
	categorysvc "github.com/shopmart-io/shopmart-backend/internal/categories"
	ordersvc "github.com/shopmart-io/shopmart-backend/internal/orders"
	productsvc "github.com/shopmart-io/shopmart-backend/internal/products"
	reviewsvc "github.com/shopmart-io/shopmart-backend/internal/reviews"
	uploadsvc "github.com/shopmart-io/shopmart-backend/internal/uploads"
	usersvc "github.com/shopmart-io/shopmart-backend/internal/users"
	"github.com/shopmart-io/shopmart-backend/pkg/checkout"
	"github.com/shopmart-io/shopmart-backend/pkg/config"
	"github.com/shopmart-io/shopmart-backend/pkg/db"
	"github.com/shopmart-io/shopmart-backend/pkg/logger"
	"github.com/shopmart-io/shopmart-backend/pkg/metrics"
	"github.com/shopmart-io/shopmart-backend/pkg/migrate"
	"github.com/shopmart-io/shopmart-backend/pkg/redis"
	"github.com/shopmart-io/shopmart-backend/pkg/storage/local"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	uploadStore, err := local.New(cfg.Uploads.Dir, cfg.Uploads.PublicBase)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare upload storage", err)
		os.Exit(1)
	}

	rules, err := checkout.RulesFromConfig(cfg.Checkout)
	if err != nil {
		logg.Error(context.Background(), "failed to parse checkout rules", err)
		os.Exit(1)
	}

	svcs, err := buildServices(cfg, dbClient, redisClient, uploadStore, rules)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.NewRegistry())

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, uploadStore.Dir(), svcs),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}

	closeErr := multierr.Append(redisClient.Close(), dbClient.Close())
	if closeErr != nil {
		logg.Error(ctx, "error closing resources", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}

func buildServices(
	cfg *config.Config,
	dbClient *db.Client,
	redisClient *redis.Client,
	uploadStore *local.Store,
	rules checkout.Rules,
) (routes.Services, error) {
	conn := dbClient.DB()

	userRepo := usersvc.NewRepository(conn)
	productRepo := productsvc.NewRepository(conn)
	categoryRepo := categorysvc.NewRepository(conn)
	cartRepo := cartsvc.NewRepository(conn)
	orderRepo := ordersvc.NewRepository(conn)
	reviewRepo := reviewsvc.NewRepository(conn)

	userService, err := usersvc.NewService(userRepo, cfg.JWT, cfg.Password)
	if err != nil {
		return routes.Services{}, err
	}

	categoryService, err := categorysvc.NewService(categoryRepo, dbClient)
	if err != nil {
		return routes.Services{}, err
	}

	productCache := productsvc.NewCache(redisClient, cfg.Redis.CacheTTL)
	productService, err := productsvc.NewService(productRepo, dbClient, categoryService, productCache)
	if err != nil {
		return routes.Services{}, err
	}

	cartService, err := cartsvc.NewService(cartRepo, productRepo)
	if err != nil {
		return routes.Services{}, err
	}

	orderService, err := ordersvc.NewService(orderRepo, dbClient, cartRepo, productRepo, rules)
	if err != nil {
		return routes.Services{}, err
	}

	reviewService, err := reviewsvc.NewService(reviewRepo, dbClient, productRepo, orderRepo)
	if err != nil {
		return routes.Services{}, err
	}

	uploadService, err := uploadsvc.NewService(uploadStore, int64(cfg.Uploads.MaxUploadMB)<<20)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Users:      userService,
		Products:   productService,
		Categories: categoryService,
		Carts:      cartService,
		Orders:     orderService,
		Reviews:    reviewService,
		Uploads:    uploadService,
	}, nil
}
