package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"bookit/internal/config"
	"bookit/internal/database"
	"bookit/internal/domain"
	"bookit/internal/pkg/clock"
	"bookit/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config load failed")
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}

	log.Info("running migrations")
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	today := clock.New(cfg.Location()).Today()
	if err := seed(db, today); err != nil {
		log.WithError(err).Fatal("seed failed")
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer rdb.Close()
		cache := repository.NewExperienceCache(rdb, cfg.ExperienceCacheTTL)
		if err := cache.Invalidate(context.Background()); err != nil {
			log.WithError(err).Warn("experience cache not invalidated")
		}
	}

	log.Info("seed completed")
	log.Info("promo codes: SAVE10, SUMMER25, FLAT100, WELCOME50")
}

func seed(db *gorm.DB, today time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// children first
		for _, table := range []string{"bookings", "slots", "promo_codes", "experiences"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		experiences := sampleExperiences()
		if err := tx.Create(&experiences).Error; err != nil {
			return fmt.Errorf("create experiences: %w", err)
		}

		var slots []domain.Slot
		for _, e := range experiences {
			for day := 1; day <= 7; day++ {
				for i, start := range []string{"09:00", "13:00", "17:30"} {
					spots := 8 + 2*i
					slots = append(slots, domain.Slot{
						ExperienceID:   e.ID,
						Date:           today.AddDate(0, 0, day),
						StartTime:      start,
						TotalSpots:     spots,
						AvailableSpots: spots,
					})
				}
			}
		}
		if err := tx.CreateInBatches(&slots, 100).Error; err != nil {
			return fmt.Errorf("create slots: %w", err)
		}

		promos := samplePromos(today)
		if err := tx.Create(&promos).Error; err != nil {
			return fmt.Errorf("create promo codes: %w", err)
		}
		return nil
	})
}

func sampleExperiences() []domain.Experience {
	return []domain.Experience{
		{
			Name:        "Kayaking in Mangroves",
			Description: "Paddle through calm mangrove channels with a certified guide.",
			Location:    "Havelock Island",
			Duration:    "3 hours",
			ImageURL:    "https://images.unsplash.com/photo-1544551763-46a013bb70d5",
			Price:       decimal.RequireFromString("999"),
		},
		{
			Name:        "Nandi Hills Sunrise",
			Description: "Early morning drive to catch the sunrise above the clouds.",
			Location:    "Bangalore",
			Duration:    "5 hours",
			ImageURL:    "https://images.unsplash.com/photo-1506905925346-21bda4d32df4",
			Price:       decimal.RequireFromString("899"),
		},
		{
			Name:        "Coffee Trail",
			Description: "Walk a working plantation and taste single-estate brews.",
			Location:    "Coorg",
			Duration:    "4 hours",
			ImageURL:    "https://images.unsplash.com/photo-1447933601403-0c6688de566e",
			Price:       decimal.RequireFromString("1299.50"),
		},
		{
			Name:        "Boat Cruise",
			Description: "River cruise through the delta with a naturalist on board.",
			Location:    "Sunderbans",
			Duration:    "6 hours",
			ImageURL:    "https://images.unsplash.com/photo-1500375592092-40eb2168fd21",
			Price:       decimal.RequireFromString("1999"),
		},
	}
}

func samplePromos(today time.Time) []domain.PromoCode {
	maxDiscount := decimal.RequireFromString("500")
	limit := 100

	promo := func(code string, t domain.DiscountType, value, minAmount string, from, until time.Time) domain.PromoCode {
		return domain.PromoCode{
			Code:          code,
			DiscountType:  t,
			DiscountValue: decimal.RequireFromString(value),
			MinAmount:     decimal.RequireFromString(minAmount),
			ValidFrom:     from,
			ValidUntil:    until,
			IsActive:      true,
		}
	}

	save10 := promo("SAVE10", domain.DiscountPercentage, "10", "0", today.AddDate(0, -1, 0), today.AddDate(1, 0, 0))
	summer := promo("SUMMER25", domain.DiscountPercentage, "25", "1000", today.AddDate(0, -1, 0), today.AddDate(0, 3, 0))
	summer.MaxDiscount = &maxDiscount
	flat := promo("FLAT100", domain.DiscountFixed, "100", "500", today.AddDate(0, -1, 0), today.AddDate(0, 6, 0))
	flat.UsageLimit = &limit
	welcome := promo("WELCOME50", domain.DiscountFixed, "50", "0", today, today.AddDate(0, 1, 0))
	expired := promo("EXPIRED20", domain.DiscountPercentage, "20", "0", today.AddDate(0, -3, 0), today.AddDate(0, 0, -1))

	return []domain.PromoCode{save10, summer, flat, welcome, expired}
}
