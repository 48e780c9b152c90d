package services

import (
	"context"
	"time"

	"hotel-server/models"
)

type RoomFilter struct {
	Status   models.RoomStatus
	RoomType string
}

type BookingFilter struct {
	UserID uint
	RoomID uint
	Status models.BookingStatus
}

type PaymentFilter struct {
	UserID    uint
	BookingID uint
}

// RoomRepository lookups return ErrRoomNotFound for missing rows. List is ordered by id.
type RoomRepository interface {
	List(ctx context.Context, filter RoomFilter) ([]models.Room, error)
	Get(ctx context.Context, id uint) (*models.Room, error)
	// GetForUpdate locks the row until the enclosing transaction ends.
	GetForUpdate(ctx context.Context, id uint) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	SetStatus(ctx context.Context, id uint, status models.RoomStatus) error
	Delete(ctx context.Context, id uint) error
}

// BookingRepository lookups return ErrBookingNotFound for missing rows.
type BookingRepository interface {
	Get(ctx context.Context, id uint) (*models.Booking, error)
	GetForUpdate(ctx context.Context, id uint) (*models.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]models.BookingSummary, error)
	// Active returns every booking that is not Cancelled for the given rooms,
	// or for all rooms when roomIDs is empty.
	Active(ctx context.Context, roomIDs ...uint) ([]models.Booking, error)
	// Create reports ErrRoomUnavailable when the store rejects an overlapping stay.
	Create(ctx context.Context, booking *models.Booking) error
	UpdateStatus(ctx context.Context, id uint, status models.BookingStatus, at time.Time) error
}

type PaymentRepository interface {
	Get(ctx context.Context, id uint) (*models.Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
}

type ActivityRepository interface {
	Record(ctx context.Context, entry *models.ActivityLog) error
}

type UserRepository interface {
	Get(ctx context.Context, id uint) (*models.User, error)
}

// Store groups the repositories. Transaction runs fn against a Store bound to a
// single transaction; returning an error rolls every write back.
type Store interface {
	Rooms() RoomRepository
	Bookings() BookingRepository
	Payments() PaymentRepository
	Activity() ActivityRepository
	Users() UserRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
