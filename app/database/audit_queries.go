package database

import (
	"database/sql"
	"log"

	"school-ledger/app/apperrors"
	"school-ledger/app/models"
)

// MaxAuditPageSize caps audit listings to bound payload size. Downstream
// consumers depend on this cap; there is no pagination cursor.
const MaxAuditPageSize = 100

// InsertAuditLog appends one audit entry. It is a record of fact, not a
// gate: no business validation happens here beyond rejecting an action
// string the schema does not know.
func InsertAuditLog(db *sql.DB, entry *models.AuditLog) error {
	if !models.ValidAuditAction(entry.Action) {
		return &apperrors.ValidationError{Message: "Unknown audit action: " + string(entry.Action)}
	}
	query := `INSERT INTO audit_logs (action, entity_type, entity_id, performed_by, changes, reason, ip_address)
			  VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''))
			  RETURNING id, created_at`
	return db.QueryRow(query,
		entry.Action, entry.EntityType, entry.EntityID, entry.PerformedBy,
		entry.Changes, entry.Reason, entry.IPAddress,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// AppendAudit writes an audit entry best-effort: a persistence failure is
// logged and never aborts the mutation it describes.
func AppendAudit(db *sql.DB, action models.AuditAction, entityType, entityID, performedBy string, changes models.ChangeList, reason, ip string) {
	entry := &models.AuditLog{
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		PerformedBy: performedBy,
		Changes:     changes,
		Reason:      reason,
		IPAddress:   ip,
	}
	if err := InsertAuditLog(db, entry); err != nil {
		log.Printf("Failed to append audit entry (%s %s %s): %v", action, entityType, entityID, err)
	}
}

// AuditFilter narrows audit listings. Zero values mean no filtering.
type AuditFilter struct {
	EntityType  string
	EntityID    string
	Action      string
	PerformedBy string
	Limit       int
}

// ListAuditLogs returns entries newest-first, capped at MaxAuditPageSize.
func ListAuditLogs(db *sql.DB, filter AuditFilter) ([]*models.AuditLog, error) {
	limit := filter.Limit
	if limit <= 0 || limit > MaxAuditPageSize {
		limit = MaxAuditPageSize
	}

	query := `SELECT id, action, entity_type, entity_id, performed_by, changes,
			  COALESCE(reason, ''), COALESCE(ip_address, ''), created_at
			  FROM audit_logs
			  WHERE ($1 = '' OR entity_type = $1)
			  AND ($2 = '' OR entity_id = $2)
			  AND ($3 = '' OR action = $3)
			  AND ($4 = '' OR performed_by::text = $4)
			  ORDER BY created_at DESC
			  LIMIT $5`

	rows, err := db.Query(query, filter.EntityType, filter.EntityID, filter.Action, filter.PerformedBy, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*models.AuditLog{}
	for rows.Next() {
		e := &models.AuditLog{}
		err := rows.Scan(
			&e.ID, &e.Action, &e.EntityType, &e.EntityID, &e.PerformedBy,
			&e.Changes, &e.Reason, &e.IPAddress, &e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// UpdateAuditLog always fails: audit entries are immutable once written.
// The database trigger enforces the same invariant for anything that
// bypasses this layer.
func UpdateAuditLog(db *sql.DB, id string) error {
	return &apperrors.ImmutableRecordError{Entity: "audit log"}
}

// DeleteAuditLog always fails: audit entries are never deleted and outlive
// the entities they describe.
func DeleteAuditLog(db *sql.DB, id string) error {
	return &apperrors.ImmutableRecordError{Entity: "audit log"}
}
