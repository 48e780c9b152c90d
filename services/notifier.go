package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"hotel-server/models"
)

// Notifier tells guests about their bookings.
type Notifier interface {
	BookingConfirmed(ctx context.Context, user *models.User, booking *models.Booking, room *models.Room) error
}

type NopNotifier struct{}

func (NopNotifier) BookingConfirmed(context.Context, *models.User, *models.Booking, *models.Room) error {
	return nil
}

// ImageUploader stores a base64 encoded room photo and returns its public URL.
type ImageUploader interface {
	UploadRoomImage(ctx context.Context, roomID uint, data string) (string, error)
}

func (s *Service) notifyConfirmed(ctx context.Context, booking *models.Booking) {
	entry := s.log.WithFields(logrus.Fields{"booking_id": booking.ID, "user_id": booking.UserID})

	user, err := s.store.Users().Get(ctx, booking.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			entry.Debug("no local profile for guest, skipping confirmation e-mail")
			return
		}
		entry.WithError(err).Warn("failed to load guest for confirmation e-mail")
		return
	}
	room, err := s.store.Rooms().Get(ctx, booking.RoomID)
	if err != nil {
		entry.WithError(err).Warn("failed to load room for confirmation e-mail")
		return
	}
	if err := s.notifier.BookingConfirmed(ctx, user, booking, room); err != nil {
		entry.WithError(err).Warn("failed to send confirmation e-mail")
	}
}
