package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"bookit/internal/database"
	"bookit/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(fmt.Sprintf("file:repository_%s?mode=memory&cache=shared", name), nil)
	require.NoError(t, err)
	require.NoError(t, database.ConfigurePool(db, database.PoolConfig{MaxOpenConns: 1}))
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedSlot(t *testing.T, db *gorm.DB, spots int) domain.Slot {
	t.Helper()
	exp := domain.Experience{Name: "Reef Snorkel", Price: decimal.NewFromInt(40)}
	require.NoError(t, db.Create(&exp).Error)
	slot := domain.Slot{
		ExperienceID:   exp.ID,
		Date:           time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime:      "10:00",
		TotalSpots:     spots,
		AvailableSpots: spots,
	}
	require.NoError(t, db.Create(&slot).Error)
	return slot
}

func availableSpots(t *testing.T, db *gorm.DB, id int64) int {
	t.Helper()
	var s domain.Slot
	require.NoError(t, db.First(&s, id).Error)
	return s.AvailableSpots
}

// A concurrent writer takes spots after our read; the conditional decrement must
// refuse instead of driving available_spots negative.
func TestReserveSpots_RefusesWhenLockedReadIsStale(t *testing.T) {
	db := setupTestDB(t)
	slot := seedSlot(t, db, 5)
	repo := NewBookingRepository(db)

	var reserved bool
	err := repo.InTx(context.Background(), func(tx BookingTx) error {
		locked, err := tx.LockSlot(slot.ID)
		if err != nil {
			return err
		}
		require.Equal(t, 5, locked.AvailableSpots)

		raw := tx.(*gormBookingTx).tx
		if err := raw.Model(&domain.Slot{}).Where("id = ?", slot.ID).
			UpdateColumn("available_spots", 1).Error; err != nil {
			return err
		}

		reserved, err = tx.ReserveSpots(slot.ID, 3)
		return err
	})

	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Equal(t, 1, availableSpots(t, db, slot.ID))
}

func TestReserveSpots_TakesExactlyTheRemainder(t *testing.T) {
	db := setupTestDB(t)
	slot := seedSlot(t, db, 4)
	repo := NewBookingRepository(db)

	var first, second bool
	err := repo.InTx(context.Background(), func(tx BookingTx) error {
		var err error
		if first, err = tx.ReserveSpots(slot.ID, 4); err != nil {
			return err
		}
		second, err = tx.ReserveSpots(slot.ID, 1)
		return err
	})

	require.NoError(t, err)
	assert.True(t, first)
	assert.False(t, second)
	assert.Equal(t, 0, availableSpots(t, db, slot.ID))
}

func TestIncrementPromoUsage_StopsAtLimit(t *testing.T) {
	db := setupTestDB(t)
	limit := 1
	require.NoError(t, db.Create(&domain.PromoCode{
		Code:          "ONCE",
		DiscountType:  domain.DiscountFixed,
		DiscountValue: decimal.NewFromInt(5),
		ValidFrom:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:    time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		UsageLimit:    &limit,
		IsActive:      true,
	}).Error)
	repo := NewBookingRepository(db)

	var first, second bool
	err := repo.InTx(context.Background(), func(tx BookingTx) error {
		var err error
		if first, err = tx.IncrementPromoUsage("ONCE"); err != nil {
			return err
		}
		second, err = tx.IncrementPromoUsage("ONCE")
		return err
	})

	require.NoError(t, err)
	assert.True(t, first)
	assert.False(t, second)

	var p domain.PromoCode
	require.NoError(t, db.First(&p, "code = ?", "ONCE").Error)
	assert.Equal(t, 1, p.UsedCount)
}

func TestInsertBooking_DuplicateReference(t *testing.T) {
	db := setupTestDB(t)
	slot := seedSlot(t, db, 4)
	repo := NewBookingRepository(db)

	insert := func(ref string) error {
		return repo.InTx(context.Background(), func(tx BookingTx) error {
			return tx.InsertBooking(&domain.Booking{
				SlotID:           slot.ID,
				UserName:         "Ana",
				UserEmail:        "ana@example.com",
				NumberOfPeople:   1,
				TotalAmount:      decimal.NewFromInt(40),
				FinalAmount:      decimal.NewFromInt(40),
				BookingReference: ref,
			})
		})
	}

	require.NoError(t, insert("BKONE"))
	err := insert("BKONE")
	assert.ErrorIs(t, err, ErrDuplicateReference)
}
