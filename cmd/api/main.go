package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/shopadmin-backend/api/routes"
	"github.com/angelmondragon/shopadmin-backend/internal/apitokens"
	"github.com/angelmondragon/shopadmin-backend/internal/attributes"
	"github.com/angelmondragon/shopadmin-backend/internal/carts"
	"github.com/angelmondragon/shopadmin-backend/internal/catalog"
	"github.com/angelmondragon/shopadmin-backend/internal/categories"
	"github.com/angelmondragon/shopadmin-backend/internal/discounts"
	"github.com/angelmondragon/shopadmin-backend/internal/facebook"
	"github.com/angelmondragon/shopadmin-backend/internal/orders"
	"github.com/angelmondragon/shopadmin-backend/internal/productattributes"
	"github.com/angelmondragon/shopadmin-backend/internal/users"
	"github.com/angelmondragon/shopadmin-backend/pkg/config"
	"github.com/angelmondragon/shopadmin-backend/pkg/db"
	"github.com/angelmondragon/shopadmin-backend/pkg/graph"
	"github.com/angelmondragon/shopadmin-backend/pkg/logger"
	"github.com/angelmondragon/shopadmin-backend/pkg/metrics"
	"github.com/angelmondragon/shopadmin-backend/pkg/migrate"
	"github.com/angelmondragon/shopadmin-backend/pkg/redis"
	"github.com/angelmondragon/shopadmin-backend/pkg/security"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("bootstrap database: %w", err)
	}
	closers := []func() error{dbClient.Close}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return multierr.Append(fmt.Errorf("bootstrap redis: %w", err), dbClient.Close())
		}
		closers = append(closers, redisClient.Close)
	} else {
		logg.Warn(ctx, "redis not configured; idempotency and auth throttling disabled")
	}
	defer func() {
		for _, closeFn := range closers {
			err = multierr.Append(err, closeFn())
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return fmt.Errorf("run dev migrations: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps, err := buildDeps(cfg, logg, dbClient, reg)
	if err != nil {
		return err
	}
	deps.Redis = redisClient

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logg.Info(logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "addr": addr}), "starting api server")

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logg.Info(shutdownCtx, "shutting down api server")
		return server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

func buildDeps(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, reg *prometheus.Registry) (routes.Deps, error) {
	conn := dbClient.DB()
	refs := catalog.NewRepository(conn)

	cipher, err := security.NewCipher(cfg.Security.TokenCipherKey)
	if err != nil {
		return routes.Deps{}, fmt.Errorf("token cipher: %w", err)
	}

	tokenRepo := apitokens.NewRepository(conn)
	authenticator, err := apitokens.NewAuthenticator(tokenRepo, logg)
	if err != nil {
		return routes.Deps{}, err
	}
	tokenSvc, err := apitokens.NewService(tokenRepo)
	if err != nil {
		return routes.Deps{}, err
	}
	userSvc, err := users.NewService(users.NewRepository(conn), security.NewPasswordHasher(cfg.Security))
	if err != nil {
		return routes.Deps{}, err
	}
	attributeSvc, err := attributes.NewService(attributes.NewRepository(conn), dbClient)
	if err != nil {
		return routes.Deps{}, err
	}
	productAttributeSvc, err := productattributes.NewService(productattributes.NewRepository(conn))
	if err != nil {
		return routes.Deps{}, err
	}
	discountSvc, err := discounts.NewService(discounts.NewRepository(conn))
	if err != nil {
		return routes.Deps{}, err
	}
	categorySvc, err := categories.NewService(categories.NewRepository(conn), dbClient)
	if err != nil {
		return routes.Deps{}, err
	}
	cartSvc, err := carts.NewService(carts.NewRepository(conn), refs, dbClient)
	if err != nil {
		return routes.Deps{}, err
	}
	orderSvc, err := orders.NewService(orders.NewRepository(conn), refs, dbClient)
	if err != nil {
		return routes.Deps{}, err
	}
	facebookSvc, err := facebook.NewService(facebook.Deps{
		Repo:      facebook.NewRepository(conn),
		Publisher: graph.NewClient(cfg.Facebook),
		Cipher:    cipher,
		Storage:   cfg.Storage,
		Metrics:   metrics.NewPublishMetrics(reg),
		Logger:    logg,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	return routes.Deps{
		Config:            cfg,
		Logger:            logg,
		DB:                dbClient,
		Gatherer:          reg,
		HTTP:              metrics.NewHTTPMetrics(reg),
		Authenticator:     authenticator,
		Tokens:            tokenSvc,
		Users:             userSvc,
		Attributes:        attributeSvc,
		ProductAttributes: productAttributeSvc,
		Discounts:         discountSvc,
		Categories:        categorySvc,
		Carts:             cartSvc,
		Orders:            orderSvc,
		Facebook:          facebookSvc,
	}, nil
}
