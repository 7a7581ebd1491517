package audit

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"school-ledger/app/config"
	"school-ledger/app/database"
)

// ListAuditLogsAPI returns entries newest-first, capped at 100 per page.
func ListAuditLogsAPI(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	filter := database.AuditFilter{
		EntityType:  c.Query("entity_type"),
		EntityID:    c.Query("entity_id"),
		Action:      c.Query("action"),
		PerformedBy: c.Query("performed_by"),
		Limit:       limit,
	}

	entries, err := database.ListAuditLogs(config.GetDB(), filter)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

// UpdateAuditLogAPI always fails: audit entries are immutable regardless of
// caller privilege. The route exists so the attempt is reported correctly
// rather than as an unknown path.
func UpdateAuditLogAPI(c *fiber.Ctx) error {
	return database.UpdateAuditLog(config.GetDB(), c.Params("id"))
}

// DeleteAuditLogAPI always fails for the same reason.
func DeleteAuditLogAPI(c *fiber.Ctx) error {
	return database.DeleteAuditLog(config.GetDB(), c.Params("id"))
}
