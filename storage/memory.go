package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"hotel-server/models"
	"hotel-server/services"
)

// MemoryStore is a services.Store kept in process memory. Transactions are
// serialised and work on a copy that replaces the live data only on commit, so
// a failed operation leaves nothing behind. It backs STORE=memory and tests.
type MemoryStore struct {
	mu   *sync.Mutex
	data *memData
	tx   bool
}

type memData struct {
	rooms    map[uint]models.Room
	bookings map[uint]models.Booking
	payments map[uint]models.Payment
	users    map[uint]models.User
	activity []models.ActivityLog
	nextID   uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mu: &sync.Mutex{},
		data: &memData{
			rooms:    map[uint]models.Room{},
			bookings: map[uint]models.Booking{},
			payments: map[uint]models.Payment{},
			users:    map[uint]models.User{},
		},
	}
}

func (d *memData) clone() *memData {
	c := &memData{
		rooms:    make(map[uint]models.Room, len(d.rooms)),
		bookings: make(map[uint]models.Booking, len(d.bookings)),
		payments: make(map[uint]models.Payment, len(d.payments)),
		users:    make(map[uint]models.User, len(d.users)),
		activity: append([]models.ActivityLog(nil), d.activity...),
		nextID:   d.nextID,
	}
	for k, v := range d.rooms {
		c.rooms[k] = v
	}
	for k, v := range d.bookings {
		c.bookings[k] = v
	}
	for k, v := range d.payments {
		c.payments[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	return c
}

func (d *memData) id() uint {
	d.nextID++
	return d.nextID
}

// lock guards a single operation outside a transaction. Inside one the
// transaction already holds the mutex.
func (s *MemoryStore) lock() func() {
	if s.tx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx services.Store) error) error {
	if s.tx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(&MemoryStore{mu: s.mu, data: work, tx: true}); err != nil {
		return err
	}
	*s.data = *work
	return nil
}

// AddUser stores a guest profile, normally synced from the identity service.
func (s *MemoryStore) AddUser(user models.User) models.User {
	defer s.lock()()
	if user.ID == 0 {
		user.ID = s.data.id()
	} else if user.ID > s.data.nextID {
		s.data.nextID = user.ID
	}
	s.data.users[user.ID] = user
	return user
}

// ActivityLog returns a copy of every recorded activity entry.
func (s *MemoryStore) ActivityLog() []models.ActivityLog {
	defer s.lock()()
	return append([]models.ActivityLog(nil), s.data.activity...)
}

func (s *MemoryStore) Rooms() services.RoomRepository       { return memRooms{s} }
func (s *MemoryStore) Bookings() services.BookingRepository { return memBookings{s} }
func (s *MemoryStore) Payments() services.PaymentRepository { return memPayments{s} }
func (s *MemoryStore) Activity() services.ActivityRepository {
	return memActivity{s}
}
func (s *MemoryStore) Users() services.UserRepository { return memUsers{s} }

type memRooms struct{ s *MemoryStore }

func (r memRooms) List(_ context.Context, filter services.RoomFilter) ([]models.Room, error) {
	defer r.s.lock()()
	rooms := []models.Room{}
	for _, room := range r.s.data.rooms {
		if filter.Status != "" && room.Status != filter.Status {
			continue
		}
		if filter.RoomType != "" && room.RoomType != filter.RoomType {
			continue
		}
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (r memRooms) Get(_ context.Context, id uint) (*models.Room, error) {
	defer r.s.lock()()
	room, ok := r.s.data.rooms[id]
	if !ok {
		return nil, services.ErrRoomNotFound
	}
	return &room, nil
}

func (r memRooms) GetForUpdate(ctx context.Context, id uint) (*models.Room, error) {
	return r.Get(ctx, id)
}

func (r memRooms) numberTaken(number string, except uint) bool {
	for id, room := range r.s.data.rooms {
		if id != except && strings.EqualFold(room.RoomNumber, number) {
			return true
		}
	}
	return false
}

func (r memRooms) Create(_ context.Context, room *models.Room) error {
	defer r.s.lock()()
	if r.numberTaken(room.RoomNumber, 0) {
		return services.ErrDuplicateRoomNumber
	}
	now := time.Now().UTC()
	room.ID = r.s.data.id()
	room.CreatedAt, room.UpdatedAt = now, now
	r.s.data.rooms[room.ID] = *room
	return nil
}

func (r memRooms) Update(_ context.Context, room *models.Room) error {
	defer r.s.lock()()
	if _, ok := r.s.data.rooms[room.ID]; !ok {
		return services.ErrRoomNotFound
	}
	if r.numberTaken(room.RoomNumber, room.ID) {
		return services.ErrDuplicateRoomNumber
	}
	room.UpdatedAt = time.Now().UTC()
	r.s.data.rooms[room.ID] = *room
	return nil
}

func (r memRooms) SetStatus(_ context.Context, id uint, status models.RoomStatus) error {
	defer r.s.lock()()
	room, ok := r.s.data.rooms[id]
	if !ok {
		return services.ErrRoomNotFound
	}
	room.Status = status
	room.UpdatedAt = time.Now().UTC()
	r.s.data.rooms[id] = room
	return nil
}

func (r memRooms) Delete(_ context.Context, id uint) error {
	defer r.s.lock()()
	if _, ok := r.s.data.rooms[id]; !ok {
		return services.ErrRoomNotFound
	}
	delete(r.s.data.rooms, id)
	return nil
}

type memBookings struct{ s *MemoryStore }

func (r memBookings) Get(_ context.Context, id uint) (*models.Booking, error) {
	defer r.s.lock()()
	booking, ok := r.s.data.bookings[id]
	if !ok {
		return nil, services.ErrBookingNotFound
	}
	return &booking, nil
}

func (r memBookings) GetForUpdate(ctx context.Context, id uint) (*models.Booking, error) {
	return r.Get(ctx, id)
}

func (r memBookings) List(_ context.Context, filter services.BookingFilter) ([]models.BookingSummary, error) {
	defer r.s.lock()()
	rows := []models.BookingSummary{}
	for _, b := range r.s.data.bookings {
		if filter.UserID != 0 && b.UserID != filter.UserID {
			continue
		}
		if filter.RoomID != 0 && b.RoomID != filter.RoomID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		room := r.s.data.rooms[b.RoomID]
		user := r.s.data.users[b.UserID]
		rows = append(rows, models.BookingSummary{
			ID:              b.ID,
			UserID:          b.UserID,
			RoomID:          b.RoomID,
			RoomNumber:      room.RoomNumber,
			RoomType:        room.RoomType,
			CheckInDate:     b.CheckInDate,
			CheckOutDate:    b.CheckOutDate,
			NumberOfGuests:  b.NumberOfGuests,
			TotalAmount:     b.TotalAmount,
			Status:          b.Status,
			SpecialRequests: b.SpecialRequests,
			UserEmail:       user.Email,
			CreatedAt:       b.CreatedAt,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CheckInDate.Equal(rows[j].CheckInDate) {
			return rows[i].CheckInDate.After(rows[j].CheckInDate)
		}
		return rows[i].ID > rows[j].ID
	})
	return rows, nil
}

func (r memBookings) active(roomIDs []uint) []models.Booking {
	want := make(map[uint]bool, len(roomIDs))
	for _, id := range roomIDs {
		want[id] = true
	}
	var out []models.Booking
	for _, b := range r.s.data.bookings {
		if b.Status == models.BookingCancelled {
			continue
		}
		if len(want) > 0 && !want[b.RoomID] {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RoomID != out[j].RoomID {
			return out[i].RoomID < out[j].RoomID
		}
		return out[i].CheckInDate.Before(out[j].CheckInDate)
	})
	return out
}

func (r memBookings) Active(_ context.Context, roomIDs ...uint) ([]models.Booking, error) {
	defer r.s.lock()()
	return r.active(roomIDs), nil
}

// Create enforces the same no-overlap rule as the Postgres exclusion constraint.
func (r memBookings) Create(_ context.Context, booking *models.Booking) error {
	defer r.s.lock()()
	if booking.Status != models.BookingCancelled &&
		!services.IsRoomFree(r.active([]uint{booking.RoomID}), booking.RoomID, booking.CheckInDate, booking.CheckOutDate, 0) {
		return services.ErrRoomUnavailable
	}
	now := time.Now().UTC()
	booking.ID = r.s.data.id()
	booking.CreatedAt, booking.UpdatedAt = now, now
	r.s.data.bookings[booking.ID] = *booking
	return nil
}

func (r memBookings) UpdateStatus(_ context.Context, id uint, status models.BookingStatus, at time.Time) error {
	defer r.s.lock()()
	booking, ok := r.s.data.bookings[id]
	if !ok {
		return services.ErrBookingNotFound
	}
	booking.Status = status
	booking.UpdatedAt = at
	r.s.data.bookings[id] = booking
	return nil
}

type memPayments struct{ s *MemoryStore }

func (r memPayments) Get(_ context.Context, id uint) (*models.Payment, error) {
	defer r.s.lock()()
	payment, ok := r.s.data.payments[id]
	if !ok {
		return nil, services.ErrPaymentNotFound
	}
	return &payment, nil
}

func (r memPayments) List(_ context.Context, filter services.PaymentFilter) ([]models.Payment, error) {
	defer r.s.lock()()
	payments := []models.Payment{}
	for _, p := range r.s.data.payments {
		if filter.UserID != 0 && p.UserID != filter.UserID {
			continue
		}
		if filter.BookingID != 0 && p.BookingID != filter.BookingID {
			continue
		}
		payments = append(payments, p)
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments, nil
}

func (r memPayments) Create(_ context.Context, payment *models.Payment) error {
	defer r.s.lock()()
	now := time.Now().UTC()
	payment.ID = r.s.data.id()
	payment.CreatedAt, payment.UpdatedAt = now, now
	r.s.data.payments[payment.ID] = *payment
	return nil
}

type memActivity struct{ s *MemoryStore }

func (r memActivity) Record(_ context.Context, entry *models.ActivityLog) error {
	defer r.s.lock()()
	entry.ID = uint(len(r.s.data.activity) + 1)
	r.s.data.activity = append(r.s.data.activity, *entry)
	return nil
}

type memUsers struct{ s *MemoryStore }

func (r memUsers) Get(_ context.Context, id uint) (*models.User, error) {
	defer r.s.lock()()
	user, ok := r.s.data.users[id]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	return &user, nil
}
