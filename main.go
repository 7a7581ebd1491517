package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"school-ledger/app/apperrors"
	"school-ledger/app/config"
	"school-ledger/app/database"
	"school-ledger/app/routes/audit"
	"school-ledger/app/routes/auth"
	"school-ledger/app/routes/dashboard"
	"school-ledger/app/routes/expenses"
	"school-ledger/app/routes/feepayments"
	"school-ledger/app/routes/feestructures"
	"school-ledger/app/routes/periodlock"
	"school-ledger/app/routes/salaries"
	"school-ledger/app/routes/students"
)

// errorHandler maps the ledger error taxonomy to HTTP statuses with a JSON
// envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := apperrors.StatusCode(err)

	// Plain fiber errors keep their own status
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if code == fiber.StatusInternalServerError {
		log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Initialize database
	config.Init()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Routes
	auth.SetupAuthRoutes(app)
	dashboard.SetupDashboardRoutes(app)
	students.SetupStudentsRoutes(app)
	feestructures.SetupFeeStructuresRoutes(app)
	feepayments.SetupFeePaymentsRoutes(app)
	expenses.SetupExpensesRoutes(app)
	salaries.SetupSalariesRoutes(app)
	audit.SetupAuditRoutes(app)
	periodlock.SetupPeriodLockRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Start server
	port := config.AppConfig.Port
	log.Println("Server starting on :" + port)
	log.Fatal(app.Listen(":" + port))
}
