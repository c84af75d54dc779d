package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookit/internal/domain"
	"bookit/internal/modules/promo"
	"bookit/internal/pkg/clock"
	"bookit/internal/pkg/validator"
	"bookit/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const defaultMaxAttempts = 3

type Service struct {
	store       BookingStore
	clock       clock.Clock
	log         logrus.FieldLogger
	newRef      func() string
	txTimeout   time.Duration
	maxAttempts int
}

type Option func(*Service)

// WithTxTimeout bounds the whole booking, including waiting for a pooled connection.
func WithTxTimeout(d time.Duration) Option {
	return func(s *Service) { s.txTimeout = d }
}

func WithReferenceGenerator(fn func() string) Option {
	return func(s *Service) { s.newRef = fn }
}

// WithMaxAttempts caps how many times a conflicting transaction is run.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func NewService(store BookingStore, c clock.Clock, log logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{
		store:       store,
		clock:       c,
		log:         log,
		newRef:      NewReference,
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBooking reserves spots on a slot, prices the booking with an optional promo code
// and records it, all in one transaction. A promo code that cannot be applied never fails
// the booking; it only yields a zero discount.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingResult, error) {
	req = normalize(req)
	if errs := validator.Validate(req); errs != nil {
		return nil, &ValidationError{Message: validator.Message(errs)}
	}

	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}
	today := s.clock.Today()
	log := s.log.WithFields(logrus.Fields{
		"slot_id":          req.SlotID,
		"number_of_people": req.NumberOfPeople,
	})

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		res, err := s.createOnce(ctx, req, today, log)
		if err == nil {
			log.WithFields(logrus.Fields{
				"booking_reference": res.BookingReference,
				"final_amount":      res.FinalAmount.StringFixed(2),
				"attempt":           attempt,
			}).Info("booking created")
			return res, nil
		}
		if errors.Is(err, ErrSlotUnavailable) {
			log.Info("slot unavailable")
			return nil, err
		}

		lastErr = err
		if !shouldRetry(err) || ctx.Err() != nil {
			break
		}
		log.WithError(err).WithField("attempt", attempt).Warn("booking transaction conflict, retrying")
	}

	log.WithError(lastErr).Error("booking transaction failed")
	return nil, &InternalError{Err: lastErr, retryable: isTransient(ctx, lastErr)}
}

func (s *Service) createOnce(ctx context.Context, req CreateBookingRequest, today time.Time, log logrus.FieldLogger) (*BookingResult, error) {
	var result *BookingResult

	err := s.store.InTx(ctx, func(tx repository.BookingTx) error {
		slot, err := tx.LockSlot(req.SlotID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSlotUnavailable
		}
		if err != nil {
			return fmt.Errorf("lock slot: %w", err)
		}
		if slot.AvailableSpots < req.NumberOfPeople {
			return ErrSlotUnavailable
		}

		price, err := tx.ExperiencePrice(slot.ExperienceID)
		if err != nil {
			return fmt.Errorf("load experience price: %w", err)
		}
		total := domain.RoundMoney(price.Mul(decimal.NewFromInt(int64(req.NumberOfPeople))))

		discount := decimal.Zero
		if req.PromoCode != "" {
			discount, err = s.redeemPromo(tx, req.PromoCode, total, today, log)
			if err != nil {
				return err
			}
		}

		reserved, err := tx.ReserveSpots(slot.ID, req.NumberOfPeople)
		if err != nil {
			return fmt.Errorf("reserve spots: %w", err)
		}
		if !reserved {
			return ErrSlotUnavailable
		}

		b := &domain.Booking{
			SlotID:           slot.ID,
			UserName:         req.UserName,
			UserEmail:        req.UserEmail,
			UserPhone:        optional(req.UserPhone),
			NumberOfPeople:   req.NumberOfPeople,
			TotalAmount:      total,
			DiscountAmount:   discount,
			FinalAmount:      promo.FinalAmount(total, discount),
			PromoCode:        optional(req.PromoCode),
			BookingReference: s.newRef(),
		}
		if err := tx.InsertBooking(b); err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		result = &BookingResult{
			BookingReference: b.BookingReference,
			TotalAmount:      b.TotalAmount,
			DiscountAmount:   b.DiscountAmount,
			FinalAmount:      b.FinalAmount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// redeemPromo returns the discount and consumes one use of the code, or returns zero when
// the code cannot be applied. Only store failures are errors.
func (s *Service) redeemPromo(tx repository.BookingTx, code string, total decimal.Decimal, today time.Time, log logrus.FieldLogger) (decimal.Decimal, error) {
	log = log.WithField("promo_code", code)

	p, err := tx.LockPromoCode(code)
	if errors.Is(err, repository.ErrNotFound) {
		log.Info("promo code not applied: unknown code")
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("lock promo code: %w", err)
	}

	discount, err := promo.Apply(*p, total, today)
	if err != nil {
		log.WithField("reason", err.Error()).Info("promo code not applied")
		return decimal.Zero, nil
	}

	ok, err := tx.IncrementPromoUsage(code)
	if err != nil {
		return decimal.Zero, fmt.Errorf("increment promo usage: %w", err)
	}
	if !ok {
		log.Info("promo code not applied: usage limit reached")
		return decimal.Zero, nil
	}
	return discount, nil
}

// GetBooking looks a committed booking up by its public reference.
func (s *Service) GetBooking(ctx context.Context, ref string) (*domain.Booking, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, &ValidationError{Message: "booking_reference is required"}
	}
	b, err := s.store.GetByReference(ctx, ref)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &InternalError{Err: err, retryable: isTransient(ctx, err)}
	}
	return b, nil
}

func normalize(req CreateBookingRequest) CreateBookingRequest {
	req.UserName = strings.TrimSpace(req.UserName)
	req.UserEmail = strings.TrimSpace(req.UserEmail)
	req.UserPhone = strings.TrimSpace(req.UserPhone)
	req.PromoCode = strings.TrimSpace(req.PromoCode)
	return req
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func shouldRetry(err error) bool {
	return repository.IsConflict(err) || errors.Is(err, repository.ErrDuplicateReference)
}

func isTransient(ctx context.Context, err error) bool {
	return repository.IsTransient(err) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		errors.Is(err, repository.ErrDuplicateReference)
}
