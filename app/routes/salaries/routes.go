package salaries

import (
	"github.com/gofiber/fiber/v2"

	"school-ledger/app/models"
	"school-ledger/app/routes/auth"
)

func SetupSalariesRoutes(app *fiber.App) {
	api := app.Group("/api/salaries")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RoleMiddleware(models.RoleRootAdmin, "accountant"))
	api.Get("/", ListSalariesAPI)
	api.Post("/", CreateSalaryAPI)
	api.Put("/:id", UpdateSalaryAPI)
	api.Post("/:id/pay", MarkSalaryPaidAPI)
	api.Delete("/:id", DeleteSalaryAPI)
}
