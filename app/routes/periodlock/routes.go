package periodlock

import (
	"github.com/gofiber/fiber/v2"

	"school-ledger/app/routes/auth"
)

func SetupPeriodLockRoutes(app *fiber.App) {
	api := app.Group("/api/period-lock")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RequireRootAdmin)
	api.Post("/", LockPeriodAPI)
}
