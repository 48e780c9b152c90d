package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/sirupsen/logrus"

	"hotel-server/services"
	"hotel-server/storage"
)

type errorKind struct {
	target error
	status int
	code   string
}

var serviceErrors = []errorKind{
	{services.ErrInvalidDateRange, iris.StatusBadRequest, "invalid_date_range"},
	{services.ErrInvalidGuestCount, iris.StatusBadRequest, "invalid_guest_count"},
	{services.ErrInvalidStatus, iris.StatusBadRequest, "invalid_status"},
	{services.ErrInvalidAmount, iris.StatusBadRequest, "invalid_amount"},
	{services.ErrInvalidPaymentMethod, iris.StatusBadRequest, "invalid_payment_method"},
	{services.ErrInvalidRoom, iris.StatusBadRequest, "invalid_room"},
	{services.ErrForbidden, iris.StatusForbidden, "forbidden"},
	{services.ErrRoomNotFound, iris.StatusNotFound, "room_not_found"},
	{services.ErrBookingNotFound, iris.StatusNotFound, "booking_not_found"},
	{services.ErrPaymentNotFound, iris.StatusNotFound, "payment_not_found"},
	{services.ErrUserNotFound, iris.StatusNotFound, "user_not_found"},
	{services.ErrRoomUnavailable, iris.StatusConflict, "room_unavailable"},
	{services.ErrInvalidTransition, iris.StatusConflict, "invalid_transition"},
	{services.ErrDuplicateRoomNumber, iris.StatusConflict, "duplicate_room_number"},
	{services.ErrRoomInUse, iris.StatusConflict, "room_in_use"},
	{services.ErrImageUpload, iris.StatusBadGateway, "image_upload_failed"},
	{services.ErrUploadsDisabled, iris.StatusServiceUnavailable, "uploads_disabled"},
	{storage.ErrLockTimeout, iris.StatusServiceUnavailable, "busy"},
}

// HandleServiceError writes the response for an error returned by the service
// layer. Unknown errors are logged and reported as a bare 500.
func HandleServiceError(ctx iris.Context, err error) {
	for _, k := range serviceErrors {
		if errors.Is(err, k.target) {
			JSONError(ctx, k.status, k.code, err.Error())
			return
		}
	}
	logrus.WithFields(logrus.Fields{
		"method": ctx.Method(),
		"path":   ctx.Path(),
	}).WithError(err).Error("request failed")
	CreateInternalServerError(ctx)
}

func HandleValidationErrors(err error, ctx iris.Context) {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		JSONError(ctx, iris.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, fmt.Sprintf("%s failed on %s", e.Field(), e.Tag()))
	}
	JSONError(ctx, iris.StatusBadRequest, "validation_failed", strings.Join(fields, "; "))
}
