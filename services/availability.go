package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"hotel-server/models"
)

// Overlaps reports whether the half-open ranges [aIn, aOut) and [bIn, bOut)
// share at least one night. A stay ending on the day another begins does not overlap.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return NormalizeDate(aIn).Before(NormalizeDate(bOut)) && NormalizeDate(aOut).After(NormalizeDate(bIn))
}

// IsRoomFree checks the requested range against existing bookings of roomID.
// Cancelled bookings and the booking with id excludeID are ignored; pass 0 to
// exclude nothing.
func IsRoomFree(bookings []models.Booking, roomID uint, checkIn, checkOut time.Time, excludeID uint) bool {
	for i := range bookings {
		b := &bookings[i]
		if b.RoomID != roomID || b.Status == models.BookingCancelled {
			continue
		}
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if Overlaps(checkIn, checkOut, b.CheckInDate, b.CheckOutDate) {
			return false
		}
	}
	return true
}

// ComputeStayCost prices a stay at pricePerNight for every night in [checkIn, checkOut).
func ComputeStayCost(pricePerNight decimal.Decimal, checkIn, checkOut time.Time) (decimal.Decimal, error) {
	nights := NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return decimal.Zero, fmt.Errorf("%w: %s to %s", ErrInvalidDateRange, FormatDate(checkIn), FormatDate(checkOut))
	}
	return pricePerNight.Mul(decimal.NewFromInt(int64(nights))), nil
}

func validateRange(checkIn, checkOut time.Time) error {
	if !NormalizeDate(checkIn).Before(NormalizeDate(checkOut)) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidDateRange, FormatDate(checkIn), FormatDate(checkOut))
	}
	return nil
}

// IsRoomAvailable reports whether roomID has no active booking overlapping
// [checkIn, checkOut), ignoring excludeBookingID when it is non-zero.
func (s *Service) IsRoomAvailable(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) (bool, error) {
	if err := validateRange(checkIn, checkOut); err != nil {
		return false, err
	}
	return roomFree(ctx, s.store, roomID, checkIn, checkOut, excludeBookingID)
}

func roomFree(ctx context.Context, store Store, roomID uint, checkIn, checkOut time.Time, excludeID uint) (bool, error) {
	bookings, err := store.Bookings().Active(ctx, roomID)
	if err != nil {
		return false, fmt.Errorf("load bookings for room %d: %w", roomID, err)
	}
	return IsRoomFree(bookings, roomID, checkIn, checkOut, excludeID), nil
}

// FindAvailableRooms returns the rooms in Available state that are free for the
// whole range, ordered by room id.
func (s *Service) FindAvailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]models.Room, error) {
	if err := validateRange(checkIn, checkOut); err != nil {
		return nil, err
	}

	rooms, err := s.store.Rooms().List(ctx, RoomFilter{Status: models.RoomAvailable})
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if len(rooms) == 0 {
		return []models.Room{}, nil
	}

	ids := make([]uint, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	bookings, err := s.store.Bookings().Active(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	byRoom := make(map[uint][]models.Booking, len(rooms))
	for _, b := range bookings {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	available := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if IsRoomFree(byRoom[r.ID], r.ID, checkIn, checkOut, 0) {
			available = append(available, r)
		}
	}
	return available, nil
}
