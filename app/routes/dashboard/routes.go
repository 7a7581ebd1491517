package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"school-ledger/app/config"
	"school-ledger/app/database"
	"school-ledger/app/models"
	"school-ledger/app/routes/auth"
)

func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RoleMiddleware(models.RoleRootAdmin, "accountant"))
	api.Get("/finance", FinanceSummaryAPI)
}

func FinanceSummaryAPI(c *fiber.Ctx) error {
	summary, err := database.GetFinanceSummary(config.GetDB())
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
