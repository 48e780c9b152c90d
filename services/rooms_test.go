package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"hotel-server/models"
	"hotel-server/services"
	"hotel-server/storage"
)

type fakeImages struct {
	url string
	err error
}

func (f fakeImages) UploadRoomImage(context.Context, uint, string) (string, error) {
	return f.url, f.err
}

func TestRoomManagement(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	in := services.RoomInput{RoomNumber: "601", RoomType: "Suite", PricePerNight: decimal.NewFromInt(200), Capacity: 4}
	if _, err := svc.CreateRoom(ctx, guest, in); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for customer, got %v", err)
	}
	room, err := svc.CreateRoom(ctx, desk, in)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if room.Status != models.RoomAvailable {
		t.Fatalf("expected new room Available, got %s", room.Status)
	}
	if _, err := svc.CreateRoom(ctx, desk, in); !errors.Is(err, services.ErrDuplicateRoomNumber) {
		t.Fatalf("expected ErrDuplicateRoomNumber, got %v", err)
	}

	bad := in
	bad.RoomNumber, bad.Capacity = "602", 0
	if _, err := svc.CreateRoom(ctx, desk, bad); !errors.Is(err, services.ErrInvalidRoom) {
		t.Fatalf("expected ErrInvalidRoom, got %v", err)
	}
	bad.Capacity, bad.PricePerNight = 1, decimal.NewFromInt(-1)
	if _, err := svc.CreateRoom(ctx, desk, bad); !errors.Is(err, services.ErrInvalidRoom) {
		t.Fatalf("expected ErrInvalidRoom for negative price, got %v", err)
	}

	in.PricePerNight = decimal.NewFromInt(250)
	updated, err := svc.UpdateRoom(ctx, manager, room.ID, in)
	if err != nil || !updated.PricePerNight.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("update room: %+v (%v)", updated, err)
	}
	if _, err := svc.UpdateRoom(ctx, manager, 999, in); !errors.Is(err, services.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}

	suites, err := svc.ListRooms(ctx, services.RoomFilter{RoomType: "Suite"})
	if err != nil || len(suites) != 1 {
		t.Fatalf("expected 1 suite, got %d (%v)", len(suites), err)
	}
	if _, err := svc.ListRooms(ctx, services.RoomFilter{Status: "Haunted"}); !errors.Is(err, services.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestBookingKeepsPriceAfterRoomUpdate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	room := addRoom(t, svc, "603", 50)
	b := book(t, svc, guest, room.ID, "2024-01-01", "2024-01-03")

	_, err := svc.UpdateRoom(ctx, manager, room.ID, services.RoomInput{
		RoomNumber: "603", RoomType: "Double", PricePerNight: decimal.NewFromInt(500), Capacity: 2,
	})
	if err != nil {
		t.Fatalf("update room: %v", err)
	}
	got, _ := svc.GetBooking(ctx, guest, b.ID)
	if !got.TotalAmount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected total to stay 100, got %s", got.TotalAmount)
	}
}

func TestDeleteRoom(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	room := addRoom(t, svc, "604", 50)
	b := book(t, svc, guest, room.ID, "2024-01-01", "2024-01-03")

	if err := svc.DeleteRoom(ctx, desk, room.ID); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for receptionist, got %v", err)
	}
	if err := svc.DeleteRoom(ctx, manager, room.ID); !errors.Is(err, services.ErrRoomInUse) {
		t.Fatalf("expected ErrRoomInUse, got %v", err)
	}
	if err := svc.CancelBooking(ctx, guest, b.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := svc.DeleteRoom(ctx, manager, room.ID); err != nil {
		t.Fatalf("delete room: %v", err)
	}
	if _, err := svc.GetRoom(ctx, room.ID); !errors.Is(err, services.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestUploadRoomImage(t *testing.T) {
	ctx := context.Background()

	svc, _ := newService(t)
	room := addRoom(t, svc, "701", 50)
	if _, err := svc.UploadRoomImage(ctx, manager, room.ID, "aGVsbG8="); !errors.Is(err, services.ErrUploadsDisabled) {
		t.Fatalf("expected ErrUploadsDisabled, got %v", err)
	}

	store := storage.NewMemoryStore()
	svc = services.New(services.Deps{Store: store, Images: fakeImages{url: "https://img.example/room-1.jpg"}, Logger: quietLogger()})
	room = addRoom(t, svc, "702", 50)
	url, err := svc.UploadRoomImage(ctx, desk, room.ID, "aGVsbG8=")
	if err != nil || url != "https://img.example/room-1.jpg" {
		t.Fatalf("upload: %q (%v)", url, err)
	}
	got, _ := svc.GetRoom(ctx, room.ID)
	if got.ImageURL != url {
		t.Fatalf("expected image url to be saved, got %q", got.ImageURL)
	}
	if _, err := svc.UploadRoomImage(ctx, guest, room.ID, "aGVsbG8="); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.UploadRoomImage(ctx, desk, 999, "aGVsbG8="); !errors.Is(err, services.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}

	svc = services.New(services.Deps{Store: store, Images: fakeImages{err: errors.New("quota")}, Logger: quietLogger()})
	if _, err := svc.UploadRoomImage(ctx, desk, room.ID, "aGVsbG8="); !errors.Is(err, services.ErrImageUpload) {
		t.Fatalf("expected ErrImageUpload, got %v", err)
	}
}

func TestLocalLocker(t *testing.T) {
	locker := services.NewLocalLocker()
	unlock, err := locker.Lock(context.Background(), "lock:room:1")
	if err != nil {
		t.Fatalf("lock: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := locker.Lock(ctx, "lock:room:1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled while held, got %v", err)
	}
	other, err := locker.Lock(context.Background(), "lock:room:2")
	if err != nil {
		t.Fatalf("independent key should lock: %v", err)
	}
	other()

	unlock()
	unlock()
	again, err := locker.Lock(context.Background(), "lock:room:1")
	if err != nil {
		t.Fatalf("relock after release: %v", err)
	}
	again()
}
