package routes

import (
	"strconv"

	"github.com/kataras/iris/v12"

	"hotel-server/models"
	"hotel-server/services"
	"hotel-server/utils"
)

var svc *services.Service

// Mount registers every /api route on app. Handlers share svc; auth verifies
// the bearer token on protected routes.
func Mount(app *iris.Application, service *services.Service, auth iris.Handler) {
	svc = service

	roomManagers := utils.RequireRoles(models.RoleReceptionist, models.RoleManager)
	bookers := utils.RequireRoles(models.RoleCustomer, models.RoleReceptionist, models.RoleManager)

	api := app.Party("/api")
	api.Get("/health", Health)

	rooms := api.Party("/rooms")
	{
		rooms.Get("/", ListRooms)
		rooms.Get("/available", GetAvailableRooms)
		rooms.Get("/{id:uint}", GetRoom)
		rooms.Get("/{id:uint}/availability", GetRoomAvailability)
		rooms.Post("/", auth, roomManagers, CreateRoom)
		rooms.Put("/{id:uint}", auth, roomManagers, UpdateRoom)
		rooms.Put("/{id:uint}/status", auth, utils.RequireStaff, UpdateRoomStatus)
		rooms.Post("/{id:uint}/image", auth, roomManagers, UploadRoomImage)
		rooms.Delete("/{id:uint}", auth, utils.RequireRoles(models.RoleManager), DeleteRoom)
	}

	bookings := api.Party("/bookings", auth)
	{
		bookings.Get("/", ListBookings)
		bookings.Get("/{id:uint}", GetBooking)
		bookings.Post("/", bookers, CreateBooking)
		bookings.Put("/{id:uint}/status", UpdateBookingStatus)
		bookings.Delete("/{id:uint}", CancelBooking)
	}

	payments := api.Party("/payments", auth)
	{
		payments.Get("/", ListPayments)
		payments.Get("/{id:uint}", GetPayment)
		payments.Post("/", bookers, CreatePayment)
	}
}

func Health(ctx iris.Context) {
	ctx.JSON(iris.Map{"status": "ok"})
}

// queryUint reads an optional unsigned query parameter. Missing means zero.
func queryUint(ctx iris.Context, name string) (uint, bool) {
	raw := ctx.URLParam(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "Invalid "+name)
		return 0, false
	}
	return uint(v), true
}
