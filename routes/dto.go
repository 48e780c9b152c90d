package routes

import (
	"time"

	"github.com/shopspring/decimal"

	"hotel-server/models"
	"hotel-server/services"
)

type RoomRequest struct {
	RoomNumber         string          `json:"roomNumber" validate:"required,max=16"`
	RoomType           string          `json:"roomType" validate:"required,max=32"`
	PricePerNight      decimal.Decimal `json:"pricePerNight"`
	Capacity           int             `json:"capacity" validate:"required,min=1"`
	Description        string          `json:"description"`
	HasBalcony         bool            `json:"hasBalcony"`
	HasWifi            bool            `json:"hasWifi"`
	HasTV              bool            `json:"hasTV"`
	HasAirConditioning bool            `json:"hasAirConditioning"`
	Status             string          `json:"status"`
}

func (r RoomRequest) input() services.RoomInput {
	return services.RoomInput{
		RoomNumber:         r.RoomNumber,
		RoomType:           r.RoomType,
		PricePerNight:      r.PricePerNight,
		Capacity:           r.Capacity,
		Description:        r.Description,
		HasBalcony:         r.HasBalcony,
		HasWifi:            r.HasWifi,
		HasTV:              r.HasTV,
		HasAirConditioning: r.HasAirConditioning,
		Status:             models.RoomStatus(r.Status),
	}
}

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ImageRequest struct {
	Data string `json:"data" validate:"required"`
}

type BookingRequest struct {
	UserID          uint   `json:"userId"`
	RoomID          uint   `json:"roomId" validate:"required"`
	CheckInDate     string `json:"checkInDate" validate:"required"`
	CheckOutDate    string `json:"checkOutDate" validate:"required"`
	NumberOfGuests  int    `json:"numberOfGuests"`
	SpecialRequests string `json:"specialRequests" validate:"max=1000"`
}

type PaymentRequest struct {
	BookingID     uint            `json:"bookingId" validate:"required"`
	UserID        uint            `json:"userId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod" validate:"required"`
	TransactionID string          `json:"transactionId" validate:"max=100"`
}

type RoomResponse struct {
	ID                 uint              `json:"id"`
	RoomNumber         string            `json:"roomNumber"`
	RoomType           string            `json:"roomType"`
	PricePerNight      decimal.Decimal   `json:"pricePerNight"`
	Capacity           int               `json:"capacity"`
	Description        string            `json:"description"`
	HasBalcony         bool              `json:"hasBalcony"`
	HasWifi            bool              `json:"hasWifi"`
	HasTV              bool              `json:"hasTV"`
	HasAirConditioning bool              `json:"hasAirConditioning"`
	ImageURL           string            `json:"imageUrl"`
	Status             models.RoomStatus `json:"status"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

func toRoomResponse(r *models.Room) RoomResponse {
	return RoomResponse{
		ID:                 r.ID,
		RoomNumber:         r.RoomNumber,
		RoomType:           r.RoomType,
		PricePerNight:      r.PricePerNight,
		Capacity:           r.Capacity,
		Description:        r.Description,
		HasBalcony:         r.HasBalcony,
		HasWifi:            r.HasWifi,
		HasTV:              r.HasTV,
		HasAirConditioning: r.HasAirConditioning,
		ImageURL:           r.ImageURL,
		Status:             r.Status,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func toRoomResponses(rooms []models.Room) []RoomResponse {
	out := make([]RoomResponse, len(rooms))
	for i := range rooms {
		out[i] = toRoomResponse(&rooms[i])
	}
	return out
}

type BookingResponse struct {
	ID              uint                 `json:"id"`
	UserID          uint                 `json:"userId"`
	RoomID          uint                 `json:"roomId"`
	CheckInDate     string               `json:"checkInDate"`
	CheckOutDate    string               `json:"checkOutDate"`
	NumberOfGuests  int                  `json:"numberOfGuests"`
	TotalAmount     decimal.Decimal      `json:"totalAmount"`
	Status          models.BookingStatus `json:"status"`
	SpecialRequests string               `json:"specialRequests"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

func toBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		RoomID:          b.RoomID,
		CheckInDate:     services.FormatDate(b.CheckInDate),
		CheckOutDate:    services.FormatDate(b.CheckOutDate),
		NumberOfGuests:  b.NumberOfGuests,
		TotalAmount:     b.TotalAmount,
		Status:          b.Status,
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

type BookingSummaryResponse struct {
	ID              uint                 `json:"id"`
	UserID          uint                 `json:"userId"`
	UserEmail       string               `json:"userEmail"`
	RoomID          uint                 `json:"roomId"`
	RoomNumber      string               `json:"roomNumber"`
	RoomType        string               `json:"roomType"`
	CheckInDate     string               `json:"checkInDate"`
	CheckOutDate    string               `json:"checkOutDate"`
	NumberOfGuests  int                  `json:"numberOfGuests"`
	TotalAmount     decimal.Decimal      `json:"totalAmount"`
	Status          models.BookingStatus `json:"status"`
	SpecialRequests string               `json:"specialRequests"`
	CreatedAt       time.Time            `json:"createdAt"`
}

func toBookingSummaries(rows []models.BookingSummary) []BookingSummaryResponse {
	out := make([]BookingSummaryResponse, len(rows))
	for i, b := range rows {
		out[i] = BookingSummaryResponse{
			ID:              b.ID,
			UserID:          b.UserID,
			UserEmail:       b.UserEmail,
			RoomID:          b.RoomID,
			RoomNumber:      b.RoomNumber,
			RoomType:        b.RoomType,
			CheckInDate:     services.FormatDate(b.CheckInDate),
			CheckOutDate:    services.FormatDate(b.CheckOutDate),
			NumberOfGuests:  b.NumberOfGuests,
			TotalAmount:     b.TotalAmount,
			Status:          b.Status,
			SpecialRequests: b.SpecialRequests,
			CreatedAt:       b.CreatedAt,
		}
	}
	return out
}

type PaymentResponse struct {
	ID            uint                 `json:"id"`
	BookingID     uint                 `json:"bookingId"`
	UserID        uint                 `json:"userId"`
	Amount        decimal.Decimal      `json:"amount"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	Status        models.PaymentStatus `json:"status"`
	TransactionID string               `json:"transactionId"`
	PaymentDate   time.Time            `json:"paymentDate"`
}

func toPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		UserID:        p.UserID,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		Status:        p.Status,
		TransactionID: p.TransactionID,
		PaymentDate:   p.PaymentDate,
	}
}
