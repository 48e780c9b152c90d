package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-server/models"
	"hotel-server/services"
)

// Postgres SQLSTATE codes the store translates into service errors.
const (
	uniqueViolation    = "23505"
	exclusionViolation = "23P01"
)

// GormStore implements services.Store on top of a *gorm.DB. Inside Transaction
// the db handle is the transaction.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Rooms() services.RoomRepository       { return gormRooms{s.db} }
func (s *GormStore) Bookings() services.BookingRepository { return gormBookings{s.db} }
func (s *GormStore) Payments() services.PaymentRepository { return gormPayments{s.db} }
func (s *GormStore) Activity() services.ActivityRepository {
	return gormActivity{s.db}
}
func (s *GormStore) Users() services.UserRepository { return gormUsers{s.db} }

func (s *GormStore) Transaction(ctx context.Context, fn func(tx services.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

type gormRooms struct{ db *gorm.DB }

func (r gormRooms) List(ctx context.Context, filter services.RoomFilter) ([]models.Room, error) {
	q := r.db.WithContext(ctx).Model(&models.Room{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.RoomType != "" {
		q = q.Where("room_type = ?", filter.RoomType)
	}
	rooms := []models.Room{}
	if err := q.Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r gormRooms) Get(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, notFound(err, services.ErrRoomNotFound)
	}
	return &room, nil
}

func (r gormRooms) GetForUpdate(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id).Error
	if err != nil {
		return nil, notFound(err, services.ErrRoomNotFound)
	}
	return &room, nil
}

func (r gormRooms) Create(ctx context.Context, room *models.Room) error {
	err := r.db.WithContext(ctx).Create(room).Error
	if pgCode(err) == uniqueViolation {
		return services.ErrDuplicateRoomNumber
	}
	return err
}

func (r gormRooms) Update(ctx context.Context, room *models.Room) error {
	err := r.db.WithContext(ctx).Save(room).Error
	if pgCode(err) == uniqueViolation {
		return services.ErrDuplicateRoomNumber
	}
	return err
}

func (r gormRooms) SetStatus(ctx context.Context, id uint, status models.RoomStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrRoomNotFound
	}
	return nil
}

func (r gormRooms) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Room{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrRoomNotFound
	}
	return nil
}

type gormBookings struct{ db *gorm.DB }

func (r gormBookings) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, notFound(err, services.ErrBookingNotFound)
	}
	return &booking, nil
}

func (r gormBookings) GetForUpdate(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, id).Error
	if err != nil {
		return nil, notFound(err, services.ErrBookingNotFound)
	}
	return &booking, nil
}

func (r gormBookings) List(ctx context.Context, filter services.BookingFilter) ([]models.BookingSummary, error) {
	q := r.db.WithContext(ctx).Table("bookings").
		Select(`bookings.id, bookings.user_id, bookings.room_id,
			COALESCE(rooms.room_number, '') AS room_number,
			COALESCE(rooms.room_type, '') AS room_type,
			bookings.check_in_date, bookings.check_out_date, bookings.number_of_guests,
			bookings.total_amount, bookings.status, COALESCE(bookings.special_requests, '') AS special_requests,
			COALESCE(users.email, '') AS user_email, bookings.created_at`).
		Joins("LEFT JOIN rooms ON rooms.id = bookings.room_id").
		Joins("LEFT JOIN users ON users.id = bookings.user_id").
		Where("bookings.deleted_at IS NULL")

	if filter.UserID != 0 {
		q = q.Where("bookings.user_id = ?", filter.UserID)
	}
	if filter.RoomID != 0 {
		q = q.Where("bookings.room_id = ?", filter.RoomID)
	}
	if filter.Status != "" {
		q = q.Where("bookings.status = ?", filter.Status)
	}

	rows := []models.BookingSummary{}
	if err := q.Order("bookings.check_in_date DESC, bookings.id DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r gormBookings) Active(ctx context.Context, roomIDs ...uint) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Where("status <> ?", models.BookingCancelled)
	if len(roomIDs) > 0 {
		q = q.Where("room_id IN ?", roomIDs)
	}
	var bookings []models.Booking
	if err := q.Order("room_id ASC, check_in_date ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r gormBookings) Create(ctx context.Context, booking *models.Booking) error {
	err := r.db.WithContext(ctx).Create(booking).Error
	if pgCode(err) == exclusionViolation {
		return services.ErrRoomUnavailable
	}
	return err
}

func (r gormBookings) UpdateStatus(ctx context.Context, id uint, status models.BookingStatus, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrBookingNotFound
	}
	return nil
}

type gormPayments struct{ db *gorm.DB }

func (r gormPayments) Get(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, notFound(err, services.ErrPaymentNotFound)
	}
	return &payment, nil
}

func (r gormPayments) List(ctx context.Context, filter services.PaymentFilter) ([]models.Payment, error) {
	q := r.db.WithContext(ctx).Model(&models.Payment{})
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.BookingID != 0 {
		q = q.Where("booking_id = ?", filter.BookingID)
	}
	payments := []models.Payment{}
	if err := q.Order("id ASC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r gormPayments) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

type gormActivity struct{ db *gorm.DB }

func (r gormActivity) Record(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

type gormUsers struct{ db *gorm.DB }

func (r gormUsers) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, services.ErrUserNotFound)
	}
	return &user, nil
}
