package routes

import (
	"net/http"

	"github.com/kataras/iris/v12"

	"hotel-server/models"
	"hotel-server/services"
	"hotel-server/utils"
)

func CreatePayment(ctx iris.Context) {
	var req PaymentRequest
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	payment, err := svc.RecordPayment(ctx.Request().Context(), utils.ActorFromContext(ctx), services.RecordPaymentInput{
		BookingID:     req.BookingID,
		UserID:        req.UserID,
		Amount:        req.Amount,
		Method:        models.PaymentMethod(req.PaymentMethod),
		TransactionID: req.TransactionID,
	})
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(toPaymentResponse(payment))
}

func GetPayment(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	payment, err := svc.GetPayment(ctx.Request().Context(), utils.ActorFromContext(ctx), id)
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(toPaymentResponse(payment))
}

func ListPayments(ctx iris.Context) {
	bookingID, ok := queryUint(ctx, "bookingId")
	if !ok {
		return
	}
	payments, err := svc.ListPayments(ctx.Request().Context(), utils.ActorFromContext(ctx), bookingID)
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	out := make([]PaymentResponse, len(payments))
	for i := range payments {
		out[i] = toPaymentResponse(&payments[i])
	}
	ctx.JSON(out)
}
