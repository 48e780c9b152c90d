package utils

import (
	"github.com/kataras/iris/v12"
)

func JSONError(ctx iris.Context, status int, code, message string) {
	ctx.StopWithJSON(status, iris.Map{"error": code, "message": message})
}

func CreateInternalServerError(ctx iris.Context) {
	JSONError(ctx, iris.StatusInternalServerError, "internal_error", "Internal server error")
}
