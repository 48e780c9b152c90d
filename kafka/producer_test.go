package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"

	"hotel-server/models"
	"hotel-server/services"
)

func TestPublishEncodesEvent(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got services.Event
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.Type != services.EventBookingCreated || got.BookingID != 7 || got.Status != models.BookingPending {
			t.Errorf("unexpected event payload: %+v", got)
		}
		return nil
	})

	p := newProducer(mock, "hotel.bookings")
	err := p.Publish(context.Background(), services.Event{
		Type:       services.EventBookingCreated,
		BookingID:  7,
		RoomID:     3,
		Status:     models.BookingPending,
		OccurredAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestPublishReturnsSendError(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := newProducer(mock, "hotel.bookings")
	err := p.Publish(context.Background(), services.Event{Type: services.EventBookingStatusChanged})
	if err != sarama.ErrOutOfBrokers {
		t.Fatalf("expected ErrOutOfBrokers, got %v", err)
	}
	p.Close()
}
