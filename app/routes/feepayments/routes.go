package feepayments

import (
	"github.com/gofiber/fiber/v2"

	"school-ledger/app/models"
	"school-ledger/app/routes/auth"
)

func SetupFeePaymentsRoutes(app *fiber.App) {
	api := app.Group("/api/fee-payments")
	api.Use(auth.AuthMiddleware)
	api.Get("/my", MyFeesAPI)
	api.Get("/", auth.RoleMiddleware(models.RoleRootAdmin, "accountant"), ListFeePaymentsAPI)
	api.Get("/:id", auth.RoleMiddleware(models.RoleRootAdmin, "accountant"), GetFeePaymentAPI)
	api.Post("/:id/transactions", auth.RoleMiddleware(models.RoleRootAdmin, "accountant"), RecordPaymentAPI)
}
