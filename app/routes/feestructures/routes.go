package feestructures

import (
	"github.com/gofiber/fiber/v2"

	"school-ledger/app/models"
	"school-ledger/app/routes/auth"
)

func SetupFeeStructuresRoutes(app *fiber.App) {
	api := app.Group("/api/fee-structures")
	api.Use(auth.AuthMiddleware)
	api.Get("/", ListFeeStructuresAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleRootAdmin, "accountant"), CreateFeeStructureAPI)
	api.Put("/:id", auth.RoleMiddleware(models.RoleRootAdmin, "accountant"), UpdateFeeStructureAPI)
	api.Delete("/:id", auth.RoleMiddleware(models.RoleRootAdmin, "accountant"), DeleteFeeStructureAPI)
}
