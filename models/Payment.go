package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "CreditCard"
	PaymentDebitCard    PaymentMethod = "DebitCard"
	PaymentCash         PaymentMethod = "Cash"
	PaymentBankTransfer PaymentMethod = "BankTransfer"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCreditCard, PaymentDebitCard, PaymentCash, PaymentBankTransfer:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentRefunded  PaymentStatus = "Refunded"
)

type Payment struct {
	gorm.Model
	BookingID     uint            `json:"bookingId" gorm:"not null;index"`
	UserID        uint            `json:"userId" gorm:"not null;index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	PaymentMethod PaymentMethod   `json:"paymentMethod" gorm:"size:16;not null"`
	Status        PaymentStatus   `json:"status" gorm:"size:16;not null;default:'Pending'"`
	TransactionID string          `json:"transactionId" gorm:"size:64;index"`
	PaymentDate   time.Time       `json:"paymentDate"`
}
