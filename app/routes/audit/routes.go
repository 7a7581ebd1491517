package audit

import (
	"github.com/gofiber/fiber/v2"

	"school-ledger/app/routes/auth"
)

func SetupAuditRoutes(app *fiber.App) {
	api := app.Group("/api/audit-logs")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RequireRootAdmin)
	api.Get("/", ListAuditLogsAPI)
	api.Put("/:id", UpdateAuditLogAPI)
	api.Delete("/:id", DeleteAuditLogAPI)
}
