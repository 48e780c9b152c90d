package routes

import (
	"net/http"

	"github.com/kataras/iris/v12"

	"hotel-server/services"
	"hotel-server/utils"
)

func CreateBooking(ctx iris.Context) {
	var req BookingRequest
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	checkIn, err := services.ParseDate(req.CheckInDate)
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	checkOut, err := services.ParseDate(req.CheckOutDate)
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}

	booking, err := svc.CreateBooking(ctx.Request().Context(), utils.ActorFromContext(ctx), services.CreateBookingInput{
		UserID:          req.UserID,
		RoomID:          req.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		NumberOfGuests:  req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(toBookingResponse(booking))
}

func GetBooking(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	booking, err := svc.GetBooking(ctx.Request().Context(), utils.ActorFromContext(ctx), id)
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(toBookingResponse(booking))
}

// ListBookings returns the caller's bookings, or every booking for staff.
func ListBookings(ctx iris.Context) {
	var filter services.BookingFilter
	if raw := ctx.URLParam("status"); raw != "" {
		status, err := services.ParseBookingStatus(raw)
		if err != nil {
			utils.HandleServiceError(ctx, err)
			return
		}
		filter.Status = status
	}
	roomID, ok := queryUint(ctx, "roomId")
	if !ok {
		return
	}
	filter.RoomID = roomID

	rows, err := svc.ListBookings(ctx.Request().Context(), utils.ActorFromContext(ctx), filter)
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(toBookingSummaries(rows))
}

func UpdateBookingStatus(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var req StatusRequest
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if err := svc.UpdateStatus(ctx.Request().Context(), utils.ActorFromContext(ctx), id, req.Status); err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	ctx.StatusCode(http.StatusNoContent)
}

// CancelBooking keeps the row and marks it Cancelled.
func CancelBooking(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if err := svc.CancelBooking(ctx.Request().Context(), utils.ActorFromContext(ctx), id); err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	ctx.StatusCode(http.StatusNoContent)
}
