package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"hotel-server/models"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventPaymentRecorded      = "payment.recorded"
)

type Event struct {
	Type       string               `json:"type"`
	BookingID  uint                 `json:"bookingId"`
	RoomID     uint                 `json:"roomId"`
	UserID     uint                 `json:"userId"`
	ActorID    uint                 `json:"actorId"`
	From       models.BookingStatus `json:"from,omitempty"`
	Status     models.BookingStatus `json:"status"`
	OccurredAt time.Time            `json:"occurredAt"`
}

// Publisher delivers booking events after the owning transaction commits.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (s *Service) publish(ctx context.Context, event Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.WithFields(logrus.Fields{
			"event":      event.Type,
			"booking_id": event.BookingID,
		}).WithError(err).Warn("failed to publish booking event")
	}
}
