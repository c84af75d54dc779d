package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookit/internal/config"
	"bookit/internal/database"
	"bookit/internal/middleware"
	"bookit/internal/modules/booking"
	"bookit/internal/modules/catalog"
	"bookit/internal/modules/promo"
	"bookit/internal/pkg/clock"
	"bookit/internal/repository"
	"bookit/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config load failed")
	}

	log := newLogger(cfg.LogLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	if err := database.ConfigurePool(db, database.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	}); err != nil {
		log.WithError(err).Fatal("database pool setup failed")
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.WithError(err).Fatal("migration failed")
		}
	}

	clk := clock.New(cfg.Location())

	var catalogOpts []catalog.Option
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, experience list will not be cached until it recovers")
		}
		cancel()
		catalogOpts = append(catalogOpts, catalog.WithCache(repository.NewExperienceCache(rdb, cfg.ExperienceCacheTTL)))
	}

	bookingRepo := repository.NewBookingRepository(db).WithLockTimeout(cfg.BookingLockTimeout)

	catalogService := catalog.NewService(repository.NewExperienceRepository(db), clk, log, catalogOpts...)
	promoService := promo.NewService(repository.NewPromoRepository(db), clk)
	bookingService := booking.NewService(bookingRepo, clk, log, booking.WithTxTimeout(cfg.BookingTxTimeout))

	router := server.NewRouter(server.Handlers{
		Catalog: catalog.NewHandler(catalogService, log),
		Booking: booking.NewHandler(bookingService),
		Promo:   promo.NewHandler(promoService, log),
	}, server.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		BookingLimiter: middleware.NewRateLimiter(cfg.BookingRatePerMin, cfg.BookingRateBurst, log),
	}, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("unknown LOG_LEVEL, using info")
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
