package auth

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"school-ledger/app/apperrors"
	"school-ledger/app/config"
	"school-ledger/app/database"
	"school-ledger/app/models"
)

func SetupAuthRoutes(app *fiber.App) {
	api := app.Group("/api/auth")

	// Public routes
	api.Post("/login", LoginAPI)
	api.Post("/logout", LogoutAPI)

	// Protected routes
	api.Use(AuthMiddleware)
	api.Get("/me", MeAPI)
	api.Post("/change-password", ChangePasswordAPI)
}

// AuthMiddleware validates the JWT cookie and loads the caller's user record
// with roles from the database, so downstream handlers work from a trusted
// identity rather than token claims.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		return &apperrors.UnauthorizedError{Message: "Authentication required"}
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return &apperrors.UnauthorizedError{Message: "Invalid or expired session"}
	}

	user, err := database.GetUserWithRoles(config.GetDB(), claims.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return &apperrors.UnauthorizedError{Message: "Account no longer exists"}
		}
		return err
	}
	if !user.IsActive {
		return &apperrors.UnauthorizedError{Message: "Account is deactivated"}
	}

	c.Locals("user_id", user.ID)
	c.Locals("user_email", user.Email)
	c.Locals("user", user)

	return c.Next()
}

// CurrentUser returns the authenticated caller set by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) *models.User {
	return c.Locals("user").(*models.User)
}

// RoleMiddleware checks if user has required role
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		for _, allowed := range allowedRoles {
			if user.HasRole(allowed) {
				return c.Next()
			}
		}
		return &apperrors.ForbiddenError{Message: "Insufficient permissions"}
	}
}

// RequireRootAdmin gates privileged ledger operations (period lock, audit
// reads). It re-fetches the caller's user record by id so the check never
// rests on client-supplied flags or a stale session.
func RequireRootAdmin(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return &apperrors.UnauthorizedError{Message: "Authentication required"}
	}

	user, err := database.GetUserWithRoles(config.GetDB(), userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return &apperrors.UnauthorizedError{Message: "Account no longer exists"}
		}
		return err
	}
	if !user.IsRootAdmin() {
		return &apperrors.ForbiddenError{Message: "Root admin privileges required"}
	}

	return c.Next()
}
