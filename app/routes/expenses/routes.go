package expenses

import (
	"github.com/gofiber/fiber/v2"

	"school-ledger/app/models"
	"school-ledger/app/routes/auth"
)

func SetupExpensesRoutes(app *fiber.App) {
	api := app.Group("/api/expenses")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RoleMiddleware(models.RoleRootAdmin, "accountant"))
	api.Get("/", GetExpensesAPI)
	api.Post("/", CreateExpenseAPI)
	api.Put("/:id", UpdateExpenseAPI)
	api.Delete("/:id", DeleteExpenseAPI)

	// Category API
	catAPI := app.Group("/api/expense-categories")
	catAPI.Use(auth.AuthMiddleware)
	catAPI.Use(auth.RoleMiddleware(models.RoleRootAdmin, "accountant"))
	catAPI.Get("/", GetCategoriesAPI)
	catAPI.Post("/", CreateCategoryAPI)
	catAPI.Put("/:id", UpdateCategoryAPI)
	catAPI.Delete("/:id", DeleteCategoryAPI)
}
