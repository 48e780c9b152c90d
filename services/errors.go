package services

import "errors"

var (
	ErrInvalidDateRange     = errors.New("check-out date must be after check-in date")
	ErrInvalidGuestCount    = errors.New("number of guests must be greater than 0")
	ErrInvalidStatus        = errors.New("unknown status")
	ErrInvalidAmount        = errors.New("amount must be greater than 0")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
	ErrInvalidRoom          = errors.New("invalid room")
	ErrRoomNotFound         = errors.New("room not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrRoomUnavailable      = errors.New("room is not available for the selected dates")
	ErrDuplicateRoomNumber  = errors.New("room number already exists")
	ErrRoomInUse            = errors.New("room has active bookings")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrForbidden            = errors.New("forbidden")
	ErrUploadsDisabled      = errors.New("image uploads are not configured")
	ErrImageUpload          = errors.New("image upload failed")
)
