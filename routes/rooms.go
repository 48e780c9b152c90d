package routes

import (
	"net/http"

	"github.com/kataras/iris/v12"

	"hotel-server/models"
	"hotel-server/services"
	"hotel-server/utils"
)

func ListRooms(ctx iris.Context) {
	filter := services.RoomFilter{
		Status:   models.RoomStatus(ctx.URLParam("status")),
		RoomType: ctx.URLParam("roomType"),
	}
	rooms, err := svc.ListRooms(ctx.Request().Context(), filter)
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(toRoomResponses(rooms))
}

func GetAvailableRooms(ctx iris.Context) {
	checkIn, err := services.ParseDate(ctx.URLParam("checkIn"))
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	checkOut, err := services.ParseDate(ctx.URLParam("checkOut"))
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}

	rooms, err := svc.FindAvailableRooms(ctx.Request().Context(), checkIn, checkOut)
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(toRoomResponses(rooms))
}

func GetRoom(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	room, err := svc.GetRoom(ctx.Request().Context(), id)
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(toRoomResponse(room))
}

// GetRoomAvailability answers whether one room is free for a stay. Pass
// excludeBookingId to ignore a booking that is being moved.
func GetRoomAvailability(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	checkIn, err := services.ParseDate(ctx.URLParam("checkIn"))
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	checkOut, err := services.ParseDate(ctx.URLParam("checkOut"))
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	exclude, ok := queryUint(ctx, "excludeBookingId")
	if !ok {
		return
	}

	reqCtx := ctx.Request().Context()
	if _, err := svc.GetRoom(reqCtx, id); err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	available, err := svc.IsRoomAvailable(reqCtx, id, checkIn, checkOut, exclude)
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{
		"roomId":    id,
		"checkIn":   services.FormatDate(checkIn),
		"checkOut":  services.FormatDate(checkOut),
		"available": available,
	})
}

func CreateRoom(ctx iris.Context) {
	var req RoomRequest
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	room, err := svc.CreateRoom(ctx.Request().Context(), utils.ActorFromContext(ctx), req.input())
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(toRoomResponse(room))
}

func UpdateRoom(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var req RoomRequest
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if _, err := svc.UpdateRoom(ctx.Request().Context(), utils.ActorFromContext(ctx), id, req.input()); err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	ctx.StatusCode(http.StatusNoContent)
}

func UpdateRoomStatus(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var req StatusRequest
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if err := svc.SetRoomStatus(ctx.Request().Context(), utils.ActorFromContext(ctx), id, req.Status); err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	ctx.StatusCode(http.StatusNoContent)
}

func UploadRoomImage(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var req ImageRequest
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	url, err := svc.UploadRoomImage(ctx.Request().Context(), utils.ActorFromContext(ctx), id, req.Data)
	if err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"url": url})
}

func DeleteRoom(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if err := svc.DeleteRoom(ctx.Request().Context(), utils.ActorFromContext(ctx), id); err != nil {
		utils.HandleServiceError(ctx, err)
		return
	}
	ctx.StatusCode(http.StatusNoContent)
}
