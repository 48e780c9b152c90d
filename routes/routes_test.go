package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"hotel-server/models"
	"hotel-server/services"
	"hotel-server/storage"
	"hotel-server/utils"
)

const testSecret = "testsecret"

// buildTestApp mounts every route over an in-memory store.
func buildTestApp(t *testing.T) *iris.Application {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := iris.New()
	app.Logger().SetLevel("disable")
	app.Validator = validator.New()

	Mount(app, services.New(services.Deps{Store: storage.NewMemoryStore(), Logger: logger}), utils.AccessTokenVerifier(testSecret))
	if err := app.Build(); err != nil {
		t.Fatalf("build app: %v", err)
	}
	return app
}

func signTestToken(t *testing.T, id uint, roles ...string) string {
	t.Helper()
	token, err := utils.SignAccessToken(testSecret, id, roles, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func do(app *iris.Application, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", resp.Body.String(), err)
	}
}

func expectStatus(t *testing.T, resp *httptest.ResponseRecorder, want int) {
	t.Helper()
	if resp.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, resp.Code, resp.Body.String())
	}
}

func createRoom(t *testing.T, app *iris.Application, manager, number, price string) RoomResponse {
	t.Helper()
	resp := do(app, http.MethodPost, "/api/rooms", manager, iris.Map{
		"roomNumber":    number,
		"roomType":      "Single",
		"pricePerNight": price,
		"capacity":      2,
	})
	expectStatus(t, resp, http.StatusCreated)
	var room RoomResponse
	decode(t, resp, &room)
	return room
}

func bookRoom(app *iris.Application, token string, roomID uint, in, out string) *httptest.ResponseRecorder {
	return do(app, http.MethodPost, "/api/bookings", token, iris.Map{
		"roomId":         roomID,
		"checkInDate":    in,
		"checkOutDate":   out,
		"numberOfGuests": 1,
	})
}

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	expectStatus(t, do(app, http.MethodGet, "/api/health", "", nil), http.StatusOK)
}

func TestRoomRoutesRBAC(t *testing.T) {
	app := buildTestApp(t)
	manager := signTestToken(t, 1, "Manager")
	customer := signTestToken(t, 2, "Customer")
	attendant := signTestToken(t, 3, "RoomAttendant")

	body := iris.Map{"roomNumber": "101", "roomType": "Single", "pricePerNight": "50", "capacity": 1}
	if resp := do(app, http.MethodPost, "/api/rooms", "", body); resp.Code == http.StatusCreated {
		t.Fatalf("expected non-201 without token, got %d", resp.Code)
	}
	expectStatus(t, do(app, http.MethodPost, "/api/rooms", customer, body), http.StatusForbidden)
	expectStatus(t, do(app, http.MethodPost, "/api/rooms", attendant, body), http.StatusForbidden)

	room := createRoom(t, app, manager, "101", "50.00")
	expectStatus(t, do(app, http.MethodPost, "/api/rooms", manager, body), http.StatusConflict)

	// missing roomType fails validation
	expectStatus(t, do(app, http.MethodPost, "/api/rooms", manager, iris.Map{"roomNumber": "102", "capacity": 1}), http.StatusBadRequest)

	statusPath := fmt.Sprintf("/api/rooms/%d/status", room.ID)
	expectStatus(t, do(app, http.MethodPut, statusPath, customer, iris.Map{"status": "Cleaning"}), http.StatusForbidden)
	expectStatus(t, do(app, http.MethodPut, statusPath, attendant, iris.Map{"status": "Cleaning"}), http.StatusNoContent)
	expectStatus(t, do(app, http.MethodPut, statusPath, attendant, iris.Map{"status": "Dirty"}), http.StatusBadRequest)

	resp := do(app, http.MethodGet, fmt.Sprintf("/api/rooms/%d", room.ID), "", nil)
	expectStatus(t, resp, http.StatusOK)
	var got RoomResponse
	decode(t, resp, &got)
	if got.Status != models.RoomCleaning {
		t.Fatalf("expected room Cleaning, got %s", got.Status)
	}

	imagePath := fmt.Sprintf("/api/rooms/%d/image", room.ID)
	expectStatus(t, do(app, http.MethodPost, imagePath, manager, iris.Map{"data": "aGVsbG8="}), http.StatusServiceUnavailable)

	expectStatus(t, do(app, http.MethodGet, "/api/rooms/999", "", nil), http.StatusNotFound)
	expectStatus(t, do(app, http.MethodDelete, fmt.Sprintf("/api/rooms/%d", room.ID), signTestToken(t, 4, "Receptionist"), nil), http.StatusForbidden)
	expectStatus(t, do(app, http.MethodDelete, fmt.Sprintf("/api/rooms/%d", room.ID), manager, nil), http.StatusNoContent)
}

func TestBookingFlow(t *testing.T) {
	app := buildTestApp(t)
	manager := signTestToken(t, 1, "Manager")
	guest := signTestToken(t, 2, "Customer")
	other := signTestToken(t, 3, "Customer")
	desk := signTestToken(t, 4, "Receptionist")

	room := createRoom(t, app, manager, "201", "50.00")

	resp := bookRoom(app, guest, room.ID, "2024-01-01", "2024-01-04")
	expectStatus(t, resp, http.StatusCreated)
	var booking BookingResponse
	decode(t, resp, &booking)
	if booking.Status != models.BookingPending || booking.UserID != 2 {
		t.Fatalf("unexpected booking %+v", booking)
	}
	if !booking.TotalAmount.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected total 150, got %s", booking.TotalAmount)
	}
	if booking.CheckInDate != "2024-01-01" || booking.CheckOutDate != "2024-01-04" {
		t.Fatalf("unexpected dates %s..%s", booking.CheckInDate, booking.CheckOutDate)
	}

	expectStatus(t, bookRoom(app, other, room.ID, "2024-01-02", "2024-01-03"), http.StatusConflict)
	expectStatus(t, bookRoom(app, other, room.ID, "2024-01-04", "2024-01-06"), http.StatusCreated)
	expectStatus(t, bookRoom(app, other, room.ID, "2024-02-05", "2024-02-05"), http.StatusBadRequest)
	expectStatus(t, bookRoom(app, other, 999, "2024-03-01", "2024-03-02"), http.StatusNotFound)

	var free []RoomResponse
	resp = do(app, http.MethodGet, "/api/rooms/available?checkIn=2024-01-02&checkOut=2024-01-03", "", nil)
	expectStatus(t, resp, http.StatusOK)
	decode(t, resp, &free)
	if len(free) != 0 {
		t.Fatalf("expected no free rooms, got %d", len(free))
	}
	resp = do(app, http.MethodGet, "/api/rooms/available?checkIn=2024-01-10&checkOut=2024-01-12", "", nil)
	expectStatus(t, resp, http.StatusOK)
	decode(t, resp, &free)
	if len(free) != 1 || free[0].ID != room.ID {
		t.Fatalf("expected room %d free, got %+v", room.ID, free)
	}
	expectStatus(t, do(app, http.MethodGet, "/api/rooms/available?checkIn=2024-01-12&checkOut=2024-01-10", "", nil), http.StatusBadRequest)

	bookingPath := fmt.Sprintf("/api/bookings/%d", booking.ID)
	statusPath := bookingPath + "/status"
	expectStatus(t, do(app, http.MethodGet, bookingPath, other, nil), http.StatusForbidden)
	expectStatus(t, do(app, http.MethodGet, bookingPath, guest, nil), http.StatusOK)
	expectStatus(t, do(app, http.MethodPut, statusPath, guest, iris.Map{"status": "Confirmed"}), http.StatusForbidden)
	expectStatus(t, do(app, http.MethodPut, statusPath, desk, iris.Map{"status": "CheckedIn"}), http.StatusConflict)
	expectStatus(t, do(app, http.MethodPut, statusPath, desk, iris.Map{"status": "Teleported"}), http.StatusBadRequest)

	resp = do(app, http.MethodPost, "/api/payments", guest, iris.Map{
		"bookingId":     booking.ID,
		"amount":        "150.00",
		"paymentMethod": "CreditCard",
	})
	expectStatus(t, resp, http.StatusCreated)
	var payment PaymentResponse
	decode(t, resp, &payment)
	if payment.Status != models.PaymentCompleted || payment.TransactionID == "" {
		t.Fatalf("unexpected payment %+v", payment)
	}

	resp = do(app, http.MethodGet, bookingPath, guest, nil)
	decode(t, resp, &booking)
	if booking.Status != models.BookingConfirmed {
		t.Fatalf("expected Confirmed after payment, got %s", booking.Status)
	}

	expectStatus(t, do(app, http.MethodPut, statusPath, desk, iris.Map{"status": "CheckedIn"}), http.StatusNoContent)
	expectStatus(t, do(app, http.MethodPut, statusPath, desk, iris.Map{"status": "CheckedOut"}), http.StatusNoContent)

	var got RoomResponse
	decode(t, do(app, http.MethodGet, fmt.Sprintf("/api/rooms/%d", room.ID), "", nil), &got)
	if got.Status != models.RoomCleaning {
		t.Fatalf("expected room Cleaning after check-out, got %s", got.Status)
	}

	expectStatus(t, do(app, http.MethodDelete, bookingPath, guest, nil), http.StatusConflict)

	var mine []BookingSummaryResponse
	resp = do(app, http.MethodGet, "/api/bookings", guest, nil)
	expectStatus(t, resp, http.StatusOK)
	decode(t, resp, &mine)
	if len(mine) != 1 || mine[0].RoomNumber != "201" {
		t.Fatalf("expected one own booking with room number, got %+v", mine)
	}

	var all []BookingSummaryResponse
	decode(t, do(app, http.MethodGet, "/api/bookings?status=Pending", desk, nil), &all)
	if len(all) != 1 || all[0].UserID != 3 {
		t.Fatalf("expected one pending booking for user 3, got %+v", all)
	}

	var payments []PaymentResponse
	decode(t, do(app, http.MethodGet, "/api/payments", other, nil), &payments)
	if len(payments) != 0 {
		t.Fatalf("expected other guest to see no payments, got %d", len(payments))
	}
	expectStatus(t, do(app, http.MethodGet, fmt.Sprintf("/api/payments/%d", payment.ID), other, nil), http.StatusForbidden)
}

func TestCancelBooking(t *testing.T) {
	app := buildTestApp(t)
	manager := signTestToken(t, 1, "Manager")
	guest := signTestToken(t, 2, "Customer")

	room := createRoom(t, app, manager, "301", "80")
	resp := bookRoom(app, guest, room.ID, "2024-05-01", "2024-05-03")
	expectStatus(t, resp, http.StatusCreated)
	var booking BookingResponse
	decode(t, resp, &booking)

	expectStatus(t, do(app, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", booking.ID), signTestToken(t, 9, "Customer"), nil), http.StatusForbidden)
	expectStatus(t, do(app, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", booking.ID), guest, nil), http.StatusNoContent)

	// the cancelled stay frees the dates
	expectStatus(t, bookRoom(app, signTestToken(t, 3, "Customer"), room.ID, "2024-05-01", "2024-05-03"), http.StatusCreated)

	var avail struct {
		Available bool `json:"available"`
	}
	resp = do(app, http.MethodGet, fmt.Sprintf("/api/rooms/%d/availability?checkIn=2024-05-02&checkOut=2024-05-04", room.ID), "", nil)
	expectStatus(t, resp, http.StatusOK)
	decode(t, resp, &avail)
	if avail.Available {
		t.Fatalf("expected room to be unavailable")
	}
}

func TestBookOnBehalf(t *testing.T) {
	app := buildTestApp(t)
	manager := signTestToken(t, 1, "Manager")
	room := createRoom(t, app, manager, "401", "100")

	body := iris.Map{"roomId": room.ID, "userId": 7, "checkInDate": "2024-06-01", "checkOutDate": "2024-06-02", "numberOfGuests": 2}
	expectStatus(t, do(app, http.MethodPost, "/api/bookings", signTestToken(t, 2, "Customer"), body), http.StatusForbidden)
	expectStatus(t, do(app, http.MethodPost, "/api/bookings", signTestToken(t, 3, "RoomAttendant"), body), http.StatusForbidden)

	resp := do(app, http.MethodPost, "/api/bookings", signTestToken(t, 4, "Receptionist"), body)
	expectStatus(t, resp, http.StatusCreated)
	var booking BookingResponse
	decode(t, resp, &booking)
	if booking.UserID != 7 {
		t.Fatalf("expected booking for user 7, got %d", booking.UserID)
	}
}
