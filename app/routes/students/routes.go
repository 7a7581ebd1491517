package students

import (
	"github.com/gofiber/fiber/v2"

	"school-ledger/app/models"
	"school-ledger/app/routes/auth"
)

func SetupStudentsRoutes(app *fiber.App) {
	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RoleMiddleware(models.RoleRootAdmin, "accountant"))
	api.Get("/", GetStudentsAPI)
	api.Post("/", CreateStudentAPI)

	batchAPI := app.Group("/api/batches")
	batchAPI.Use(auth.AuthMiddleware)
	batchAPI.Use(auth.RoleMiddleware(models.RoleRootAdmin, "accountant"))
	batchAPI.Get("/", GetBatchesAPI)
	batchAPI.Post("/", CreateBatchAPI)
}
