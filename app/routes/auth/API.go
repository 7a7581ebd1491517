package auth

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"school-ledger/app/apperrors"
	"school-ledger/app/config"
	"school-ledger/app/database"
)

func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return &apperrors.ValidationError{Message: "Invalid request body"}
	}

	user, err := database.GetUserByEmail(config.GetDB(), req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return &apperrors.UnauthorizedError{Message: "Invalid credentials"}
		}
		return err
	}

	if !CheckPasswordHash(req.Password, user.Password) {
		return &apperrors.UnauthorizedError{Message: "Invalid credentials"}
	}

	roles, err := database.GetUserRoles(config.GetDB(), user.ID)
	if err != nil {
		return err
	}
	user.Roles = roles

	token, err := GenerateJWT(user.ID, user.Email)
	if err != nil {
		return err
	}

	// Set JWT as HTTP-only cookie
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
	})
}

func LogoutAPI(c *fiber.Ctx) error {
	// Clear JWT cookie
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{"message": "Logged out"})
}

func MeAPI(c *fiber.Ctx) error {
	return c.JSON(CurrentUser(c))
}

func ChangePasswordAPI(c *fiber.Ctx) error {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return &apperrors.ValidationError{Message: "Invalid request body"}
	}
	if len(req.NewPassword) < 8 {
		return &apperrors.ValidationError{Message: "New password must be at least 8 characters"}
	}

	user := CurrentUser(c)

	full, err := database.GetUserByID(config.GetDB(), user.ID)
	if err != nil {
		return err
	}
	if !CheckPasswordHash(req.CurrentPassword, full.Password) {
		return &apperrors.UnauthorizedError{Message: "Current password is incorrect"}
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := database.UpdateUserPassword(config.GetDB(), user.ID, hashed); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}
