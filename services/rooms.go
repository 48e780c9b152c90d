package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"hotel-server/models"
)

type RoomInput struct {
	RoomNumber         string
	RoomType           string
	PricePerNight      decimal.Decimal
	Capacity           int
	Description        string
	HasBalcony         bool
	HasWifi            bool
	HasTV              bool
	HasAirConditioning bool
	// Status defaults to Available on create and is kept on update when empty.
	Status models.RoomStatus
}

func (in RoomInput) validate() error {
	switch {
	case strings.TrimSpace(in.RoomNumber) == "":
		return fmt.Errorf("%w: room number is required", ErrInvalidRoom)
	case strings.TrimSpace(in.RoomType) == "":
		return fmt.Errorf("%w: room type is required", ErrInvalidRoom)
	case in.PricePerNight.IsNegative():
		return fmt.Errorf("%w: price per night cannot be negative", ErrInvalidRoom)
	case in.Capacity < 1:
		return fmt.Errorf("%w: capacity must be at least 1", ErrInvalidRoom)
	case in.Status != "" && !in.Status.IsValid():
		return fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}
	return nil
}

func (in RoomInput) apply(room *models.Room) {
	room.RoomNumber = strings.TrimSpace(in.RoomNumber)
	room.RoomType = strings.TrimSpace(in.RoomType)
	room.PricePerNight = in.PricePerNight
	room.Capacity = in.Capacity
	room.Description = in.Description
	room.HasBalcony = in.HasBalcony
	room.HasWifi = in.HasWifi
	room.HasTV = in.HasTV
	room.HasAirConditioning = in.HasAirConditioning
	if in.Status != "" {
		room.Status = in.Status
	}
}

func (s *Service) ListRooms(ctx context.Context, filter RoomFilter) ([]models.Room, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, filter.Status)
	}
	return s.store.Rooms().List(ctx, filter)
}

func (s *Service) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	return s.store.Rooms().Get(ctx, id)
}

func (s *Service) CreateRoom(ctx context.Context, actor Actor, in RoomInput) (*models.Room, error) {
	if !CanManageRooms(actor) {
		return nil, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	room := &models.Room{Status: models.RoomAvailable}
	in.apply(room)

	err := s.store.Transaction(ctx, func(tx Store) error {
		if err := tx.Rooms().Create(ctx, room); err != nil {
			return err
		}
		return s.record(ctx, tx, actor, "room.create", "room", room.ID, nil, room)
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// UpdateRoom replaces the room's details. Existing bookings keep the amount
// they were created with.
func (s *Service) UpdateRoom(ctx context.Context, actor Actor, id uint, in RoomInput) (*models.Room, error) {
	if !CanManageRooms(actor) {
		return nil, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	var room *models.Room
	err := s.store.Transaction(ctx, func(tx Store) error {
		r, err := tx.Rooms().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		before := *r
		in.apply(r)
		if err := tx.Rooms().Update(ctx, r); err != nil {
			return err
		}
		room = r
		return s.record(ctx, tx, actor, "room.update", "room", r.ID, before, r)
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// SetRoomStatus lets staff move a room between states by hand, for example
// marking a cleaned room Available again.
func (s *Service) SetRoomStatus(ctx context.Context, actor Actor, id uint, status string) error {
	if !CanSetRoomStatus(actor) {
		return ErrForbidden
	}
	target := models.RoomStatus(status)
	if !target.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.store.Transaction(ctx, func(tx Store) error {
		r, err := tx.Rooms().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Rooms().SetStatus(ctx, id, target); err != nil {
			return err
		}
		return s.record(ctx, tx, actor, "room.status_update", "room", id,
			map[string]models.RoomStatus{"status": r.Status},
			map[string]models.RoomStatus{"status": target})
	})
}

// DeleteRoom removes a room that has no Pending, Confirmed or CheckedIn bookings.
func (s *Service) DeleteRoom(ctx context.Context, actor Actor, id uint) error {
	if !CanDeleteRooms(actor) {
		return ErrForbidden
	}
	return s.store.Transaction(ctx, func(tx Store) error {
		r, err := tx.Rooms().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		active, err := tx.Bookings().Active(ctx, id)
		if err != nil {
			return err
		}
		for _, b := range active {
			if !IsTerminal(b.Status) {
				return fmt.Errorf("%w: booking %d is %s", ErrRoomInUse, b.ID, b.Status)
			}
		}
		if err := tx.Rooms().Delete(ctx, id); err != nil {
			return err
		}
		return s.record(ctx, tx, actor, "room.delete", "room", id, r, nil)
	})
}

// UploadRoomImage stores a photo for the room and saves its URL.
func (s *Service) UploadRoomImage(ctx context.Context, actor Actor, id uint, data string) (string, error) {
	if !CanManageRooms(actor) {
		return "", ErrForbidden
	}
	if s.images == nil {
		return "", ErrUploadsDisabled
	}
	if strings.TrimSpace(data) == "" {
		return "", fmt.Errorf("%w: image data is required", ErrInvalidRoom)
	}
	if _, err := s.store.Rooms().Get(ctx, id); err != nil {
		return "", err
	}

	url, err := s.images.UploadRoomImage(ctx, id, data)
	if err != nil {
		s.log.WithField("room_id", id).WithError(err).Error("room image upload failed")
		return "", fmt.Errorf("%w: %v", ErrImageUpload, err)
	}

	err = s.store.Transaction(ctx, func(tx Store) error {
		r, err := tx.Rooms().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		before := r.ImageURL
		r.ImageURL = url
		if err := tx.Rooms().Update(ctx, r); err != nil {
			return err
		}
		return s.record(ctx, tx, actor, "room.image_update", "room", id,
			map[string]string{"imageUrl": before}, map[string]string{"imageUrl": url})
	})
	if err != nil {
		return "", err
	}
	return url, nil
}
