package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"hotel-server/models"
)

type RecordPaymentInput struct {
	BookingID uint
	// UserID records the payment for another payer. Staff only.
	UserID        uint
	Amount        decimal.Decimal
	Method        models.PaymentMethod
	TransactionID string
}

// RecordPayment stores a completed payment and confirms a Pending booking in
// the same transaction. Payments against Confirmed or CheckedIn bookings leave
// the status alone; terminal bookings reject payments.
func (s *Service) RecordPayment(ctx context.Context, actor Actor, in RecordPaymentInput) (*models.Payment, error) {
	if !actor.Identified() {
		return nil, ErrForbidden
	}
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !in.Method.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, in.Method)
	}
	payer := actor.UserID
	if in.UserID != 0 && in.UserID != actor.UserID {
		if !CanBookOnBehalf(actor) {
			return nil, fmt.Errorf("%w: cannot pay as another user", ErrForbidden)
		}
		payer = in.UserID
	}
	txID := in.TransactionID
	if txID == "" {
		txID = uuid.NewString()
	}

	var (
		payment   *models.Payment
		booking   *models.Booking
		confirmed bool
	)
	err := s.store.Transaction(ctx, func(tx Store) error {
		b, err := tx.Bookings().GetForUpdate(ctx, in.BookingID)
		if err != nil {
			return err
		}
		if !CanRecordPayment(actor, b) {
			return ErrForbidden
		}
		if IsTerminal(b.Status) {
			return fmt.Errorf("%w: booking is %s", ErrInvalidTransition, b.Status)
		}

		now := s.now()
		payment = &models.Payment{
			BookingID:     b.ID,
			UserID:        payer,
			Amount:        in.Amount,
			PaymentMethod: in.Method,
			Status:        models.PaymentCompleted,
			TransactionID: txID,
			PaymentDate:   now,
		}
		if err := tx.Payments().Create(ctx, payment); err != nil {
			return err
		}
		if err := s.record(ctx, tx, actor, "payment.create", "payment", payment.ID, nil, payment); err != nil {
			return err
		}

		booking = b
		if b.Status == models.BookingPending {
			confirmed = true
			return s.applyTransition(ctx, tx, actor, b, models.BookingConfirmed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"payment_id": payment.ID,
		"booking_id": payment.BookingID,
		"amount":     payment.Amount.String(),
		"method":     payment.PaymentMethod,
	}).Info("payment recorded")

	s.publish(ctx, Event{
		Type:       EventPaymentRecorded,
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		UserID:     booking.UserID,
		ActorID:    actor.UserID,
		Status:     booking.Status,
		OccurredAt: s.now(),
	})
	if confirmed {
		s.afterTransition(ctx, actor, booking, models.BookingPending)
	}
	return payment, nil
}

func (s *Service) GetPayment(ctx context.Context, actor Actor, id uint) (*models.Payment, error) {
	p, err := s.store.Payments().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanViewPayment(actor, p) {
		return nil, ErrForbidden
	}
	return p, nil
}

// ListPayments returns all payments for staff and the actor's own otherwise.
func (s *Service) ListPayments(ctx context.Context, actor Actor, bookingID uint) ([]models.Payment, error) {
	filter := PaymentFilter{BookingID: bookingID}
	if !actor.IsStaff() {
		if !actor.Identified() {
			return nil, ErrForbidden
		}
		filter.UserID = actor.UserID
	}
	return s.store.Payments().List(ctx, filter)
}
