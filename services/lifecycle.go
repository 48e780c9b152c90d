package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"hotel-server/models"
)

var bookingTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:    {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed:  {models.BookingCheckedIn, models.BookingCancelled},
	models.BookingCheckedIn:  {models.BookingCheckedOut, models.BookingCancelled},
	models.BookingCheckedOut: {},
	models.BookingCancelled:  {},
}

// roomEffects lists the room status each booking status forces on its room.
var roomEffects = map[models.BookingStatus]models.RoomStatus{
	models.BookingCheckedIn:  models.RoomOccupied,
	models.BookingCheckedOut: models.RoomCleaning,
}

func ParseBookingStatus(s string) (models.BookingStatus, error) {
	status := models.BookingStatus(s)
	if _, ok := bookingTransitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsTerminal(status models.BookingStatus) bool {
	return len(bookingTransitions[status]) == 0
}

type CreateBookingInput struct {
	// UserID books on behalf of another guest. Zero means the actor.
	UserID          uint
	RoomID          uint
	CheckIn         time.Time
	CheckOut        time.Time
	NumberOfGuests  int
	SpecialRequests string
}

// CreateBooking reserves a room for [CheckIn, CheckOut) in Pending state. The
// room is locked for the whole check-then-insert so two overlapping requests
// cannot both succeed.
func (s *Service) CreateBooking(ctx context.Context, actor Actor, in CreateBookingInput) (*models.Booking, error) {
	if !CanCreateBooking(actor) {
		return nil, ErrForbidden
	}
	owner := actor.UserID
	if in.UserID != 0 && in.UserID != actor.UserID {
		if !CanBookOnBehalf(actor) {
			return nil, fmt.Errorf("%w: cannot book for another user", ErrForbidden)
		}
		owner = in.UserID
	}

	checkIn, checkOut := NormalizeDate(in.CheckIn), NormalizeDate(in.CheckOut)
	if err := validateRange(checkIn, checkOut); err != nil {
		return nil, err
	}
	if in.NumberOfGuests <= 0 {
		return nil, ErrInvalidGuestCount
	}

	unlock, err := s.locker.Lock(ctx, roomLockKey(in.RoomID))
	if err != nil {
		return nil, fmt.Errorf("lock room %d: %w", in.RoomID, err)
	}
	defer unlock()

	var booking *models.Booking
	err = s.store.Transaction(ctx, func(tx Store) error {
		room, err := tx.Rooms().GetForUpdate(ctx, in.RoomID)
		if err != nil {
			return err
		}

		free, err := roomFree(ctx, tx, room.ID, checkIn, checkOut, 0)
		if err != nil {
			return err
		}
		if !free {
			return ErrRoomUnavailable
		}

		amount, err := ComputeStayCost(room.PricePerNight, checkIn, checkOut)
		if err != nil {
			return err
		}

		booking = &models.Booking{
			UserID:          owner,
			RoomID:          room.ID,
			CheckInDate:     checkIn,
			CheckOutDate:    checkOut,
			NumberOfGuests:  in.NumberOfGuests,
			TotalAmount:     amount,
			Status:          models.BookingPending,
			SpecialRequests: in.SpecialRequests,
		}
		if err := tx.Bookings().Create(ctx, booking); err != nil {
			return err
		}
		return s.record(ctx, tx, actor, "booking.create", "booking", booking.ID, nil, booking)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"room_id":    booking.RoomID,
		"user_id":    booking.UserID,
		"nights":     NightsBetween(checkIn, checkOut),
		"amount":     booking.TotalAmount.String(),
	}).Info("booking created")

	s.publish(ctx, Event{
		Type:       EventBookingCreated,
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		UserID:     booking.UserID,
		ActorID:    actor.UserID,
		Status:     booking.Status,
		OccurredAt: s.now(),
	})
	return booking, nil
}

// UpdateStatus moves a booking along the lifecycle and applies the matching
// room status. Only staff may advance a booking; owners may also cancel.
func (s *Service) UpdateStatus(ctx context.Context, actor Actor, bookingID uint, status string) error {
	target, err := ParseBookingStatus(status)
	if err != nil {
		return err
	}
	_, err = s.transition(ctx, actor, bookingID, target)
	return err
}

// CancelBooking is UpdateStatus with a Cancelled target.
func (s *Service) CancelBooking(ctx context.Context, actor Actor, bookingID uint) error {
	_, err := s.transition(ctx, actor, bookingID, models.BookingCancelled)
	return err
}

func (s *Service) transition(ctx context.Context, actor Actor, bookingID uint, target models.BookingStatus) (*models.Booking, error) {
	var (
		booking *models.Booking
		from    models.BookingStatus
	)
	err := s.store.Transaction(ctx, func(tx Store) error {
		b, err := tx.Bookings().GetForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := authorizeTransition(actor, b, target); err != nil {
			return err
		}
		from = b.Status
		if !CanTransition(from, target) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, target)
		}
		booking = b
		return s.applyTransition(ctx, tx, actor, b, target)
	})
	if err != nil {
		return nil, err
	}
	s.afterTransition(ctx, actor, booking, from)
	return booking, nil
}

func authorizeTransition(actor Actor, b *models.Booking, target models.BookingStatus) error {
	if target == models.BookingCancelled {
		if !CanCancelBooking(actor, b) {
			return ErrForbidden
		}
		return nil
	}
	if !CanAdvanceBooking(actor) {
		return ErrForbidden
	}
	return nil
}

// applyTransition writes the new status, the room side effect and the activity
// row inside tx. The caller has already checked the transition is legal.
func (s *Service) applyTransition(ctx context.Context, tx Store, actor Actor, b *models.Booking, target models.BookingStatus) error {
	before := *b
	now := s.now()
	if err := tx.Bookings().UpdateStatus(ctx, b.ID, target, now); err != nil {
		return err
	}
	b.Status = target
	b.UpdatedAt = now

	if roomStatus, ok := roomEffects[target]; ok {
		err := tx.Rooms().SetStatus(ctx, b.RoomID, roomStatus)
		if err != nil && !errors.Is(err, ErrRoomNotFound) {
			return fmt.Errorf("set room %d %s: %w", b.RoomID, roomStatus, err)
		}
	}
	return s.record(ctx, tx, actor, "booking.status_update", "booking", b.ID, before, b)
}

func (s *Service) afterTransition(ctx context.Context, actor Actor, b *models.Booking, from models.BookingStatus) {
	s.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"room_id":    b.RoomID,
		"actor_id":   actor.UserID,
		"from":       from,
		"to":         b.Status,
	}).Info("booking status changed")

	s.publish(ctx, Event{
		Type:       EventBookingStatusChanged,
		BookingID:  b.ID,
		RoomID:     b.RoomID,
		UserID:     b.UserID,
		ActorID:    actor.UserID,
		From:       from,
		Status:     b.Status,
		OccurredAt: s.now(),
	})
	if b.Status == models.BookingConfirmed {
		s.notifyConfirmed(ctx, b)
	}
}

// GetBooking returns a booking visible to the actor.
func (s *Service) GetBooking(ctx context.Context, actor Actor, id uint) (*models.Booking, error) {
	b, err := s.store.Bookings().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanViewBooking(actor, b) {
		return nil, ErrForbidden
	}
	return b, nil
}

// ListBookings returns every booking for staff and only their own for anyone else.
func (s *Service) ListBookings(ctx context.Context, actor Actor, filter BookingFilter) ([]models.BookingSummary, error) {
	if !actor.IsStaff() {
		if !actor.Identified() {
			return nil, ErrForbidden
		}
		filter.UserID = actor.UserID
	}
	return s.store.Bookings().List(ctx, filter)
}
