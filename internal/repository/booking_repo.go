package repository

import (
	"context"
	"fmt"
	"time"

	"bookit/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingTx is the set of reads and writes the booking transaction performs.
// Every method runs on the same database transaction.
type BookingTx interface {
	LockSlot(id int64) (*domain.Slot, error)
	ExperiencePrice(experienceID int64) (decimal.Decimal, error)
	LockPromoCode(code string) (*domain.PromoCode, error)
	IncrementPromoUsage(code string) (bool, error)
	ReserveSpots(slotID int64, n int) (bool, error)
	InsertBooking(b *domain.Booking) error
}

type BookingRepository struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// WithLockTimeout bounds how long a Postgres transaction waits on a row lock.
func (r *BookingRepository) WithLockTimeout(d time.Duration) *BookingRepository {
	r.lockTimeout = d
	return r
}

// InTx runs fn in one transaction. Any error returned by fn rolls back every write.
func (r *BookingRepository) InTx(ctx context.Context, fn func(tx BookingTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.lockTimeout > 0 && tx.Dialector.Name() == "postgres" {
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = %d", r.lockTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return fn(&gormBookingTx{tx: tx})
	})
}

func (r *BookingRepository) GetByReference(ctx context.Context, ref string) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Where("booking_reference = ?", ref).
		First(&b).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

type gormBookingTx struct {
	tx *gorm.DB
}

func (t *gormBookingTx) LockSlot(id int64) (*domain.Slot, error) {
	var s domain.Slot
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (t *gormBookingTx) ExperiencePrice(experienceID int64) (decimal.Decimal, error) {
	var e domain.Experience
	err := t.tx.Select("id", "price").Where("id = ?", experienceID).First(&e).Error
	if err != nil {
		return decimal.Zero, notFound(err)
	}
	return e.Price, nil
}

func (t *gormBookingTx) LockPromoCode(code string) (*domain.PromoCode, error) {
	var p domain.PromoCode
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", code).
		First(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// IncrementPromoUsage bumps used_count unless the limit is already reached.
func (t *gormBookingTx) IncrementPromoUsage(code string) (bool, error) {
	res := t.tx.Model(&domain.PromoCode{}).
		Where("code = ? AND (usage_limit IS NULL OR used_count < usage_limit)", code).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ReserveSpots decrements available_spots only if enough remain.
func (t *gormBookingTx) ReserveSpots(slotID int64, n int) (bool, error) {
	res := t.tx.Model(&domain.Slot{}).
		Where("id = ? AND available_spots >= ?", slotID, n).
		UpdateColumn("available_spots", gorm.Expr("available_spots - ?", n))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (t *gormBookingTx) InsertBooking(b *domain.Booking) error {
	if err := t.tx.Omit(clause.Associations).Create(b).Error; err != nil {
		if IsDuplicateReference(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateReference, err)
		}
		return err
	}
	return nil
}
