package expenses

import (
	"database/sql"

	"school-ledger/app/models"
)

// Expense Queries
func GetAllExpenses(db *sql.DB) ([]*models.Expense, error) {
	query := `SELECT e.id, e.category_id, e.title, e.amount, e.currency, e.paid_on, COALESCE(e.notes, ''),
			  e.is_locked, e.locked_by, e.locked_at, e.created_at, e.updated_at, c.id, c.name
			  FROM expenses e
			  LEFT JOIN categories c ON e.category_id = c.id
			  WHERE e.deleted_at IS NULL
			  ORDER BY e.paid_on DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []*models.Expense{} // Initialize to empty slice for non-null JSON
	for rows.Next() {
		e := &models.Expense{}
		var catID, catName sql.NullString
		err := rows.Scan(
			&e.ID, &e.CategoryID, &e.Title, &e.Amount, &e.Currency, &e.PaidOn, &e.Notes,
			&e.IsLocked, &e.LockedBy, &e.LockedAt, &e.CreatedAt, &e.UpdatedAt, &catID, &catName,
		)
		if err != nil {
			return nil, err
		}

		if catID.Valid {
			e.Category = &models.Category{
				ID:   catID.String,
				Name: catName.String,
			}
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

func GetExpenseByID(db *sql.DB, id string) (*models.Expense, error) {
	query := `SELECT e.id, e.category_id, e.title, e.amount, e.currency, e.paid_on, COALESCE(e.notes, ''),
			  e.is_locked, e.locked_by, e.locked_at, e.created_at, e.updated_at
			  FROM expenses e
			  WHERE e.id = $1 AND e.deleted_at IS NULL`

	e := &models.Expense{}
	err := db.QueryRow(query, id).Scan(
		&e.ID, &e.CategoryID, &e.Title, &e.Amount, &e.Currency, &e.PaidOn, &e.Notes,
		&e.IsLocked, &e.LockedBy, &e.LockedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func CreateExpense(db *sql.DB, e *models.Expense) error {
	query := `INSERT INTO expenses (category_id, title, amount, currency, paid_on, notes)
			  VALUES ($1, $2, $3, COALESCE(NULLIF($4, ''), 'UGX'), $5, NULLIF($6, ''))
			  RETURNING id, currency, created_at, updated_at`
	return db.QueryRow(query, e.CategoryID, e.Title, e.Amount, e.Currency, e.PaidOn, e.Notes).
		Scan(&e.ID, &e.Currency, &e.CreatedAt, &e.UpdatedAt)
}

func UpdateExpense(db *sql.DB, e *models.Expense) error {
	query := `UPDATE expenses
			  SET category_id = $1, title = $2, amount = $3, paid_on = $4, notes = NULLIF($5, ''), updated_at = NOW()
			  WHERE id = $6 AND deleted_at IS NULL AND is_locked = false
			  RETURNING updated_at`
	return db.QueryRow(query, e.CategoryID, e.Title, e.Amount, e.PaidOn, e.Notes, e.ID).
		Scan(&e.UpdatedAt)
}

func DeleteExpense(db *sql.DB, id string) error {
	var deletedAt sql.NullTime
	query := `UPDATE expenses SET deleted_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL AND is_locked = false
			  RETURNING deleted_at`
	return db.QueryRow(query, id).Scan(&deletedAt)
}

// Category Queries
func GetAllCategories(db *sql.DB) ([]*models.Category, error) {
	query := `SELECT id, name, is_active, created_at, updated_at
			  FROM categories WHERE deleted_at IS NULL
			  ORDER BY name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func CreateCategory(db *sql.DB, c *models.Category) error {
	query := `INSERT INTO categories (name, is_active) VALUES ($1, true)
			  RETURNING id, is_active, created_at, updated_at`
	return db.QueryRow(query, c.Name).Scan(&c.ID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
}

func UpdateCategory(db *sql.DB, c *models.Category) error {
	query := `UPDATE categories SET name = $1, is_active = $2, updated_at = NOW()
			  WHERE id = $3 AND deleted_at IS NULL
			  RETURNING updated_at`
	return db.QueryRow(query, c.Name, c.IsActive, c.ID).Scan(&c.UpdatedAt)
}

func DeleteCategory(db *sql.DB, id string) error {
	_, err := db.Exec(`UPDATE categories SET deleted_at = NOW() WHERE id = $1`, id)
	return err
}
