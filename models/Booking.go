package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "Pending"
	BookingConfirmed  BookingStatus = "Confirmed"
	BookingCheckedIn  BookingStatus = "CheckedIn"
	BookingCheckedOut BookingStatus = "CheckedOut"
	BookingCancelled  BookingStatus = "Cancelled"
)

// Booking dates are calendar dates stored at UTC midnight. CheckOutDate is exclusive.
// TotalAmount is fixed when the booking is created.
type Booking struct {
	gorm.Model
	UserID          uint            `json:"userId" gorm:"not null;index"`
	RoomID          uint            `json:"roomId" gorm:"not null;index"`
	CheckInDate     time.Time       `json:"checkInDate" gorm:"type:date;not null"`
	CheckOutDate    time.Time       `json:"checkOutDate" gorm:"type:date;not null"`
	NumberOfGuests  int             `json:"numberOfGuests" gorm:"not null"`
	TotalAmount     decimal.Decimal `json:"totalAmount" gorm:"type:numeric(12,2);not null"`
	Status          BookingStatus   `json:"status" gorm:"size:16;not null;default:'Pending';index"`
	SpecialRequests string          `json:"specialRequests" gorm:"type:text"`
}

// BookingSummary is the flattened row returned by booking listings.
type BookingSummary struct {
	ID              uint
	UserID          uint
	RoomID          uint
	RoomNumber      string
	RoomType        string
	CheckInDate     time.Time
	CheckOutDate    time.Time
	NumberOfGuests  int
	TotalAmount     decimal.Decimal
	Status          BookingStatus
	SpecialRequests string
	UserEmail       string
	CreatedAt       time.Time
}
