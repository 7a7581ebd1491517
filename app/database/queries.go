package database

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"

	"school-ledger/app/models"
)

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, COALESCE(phone, ''), is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Phone, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, COALESCE(phone, ''), is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Phone, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserRoles(db *sql.DB, userID string) ([]*models.Role, error) {
	query := `SELECT r.id, r.name, COALESCE(r.description, ''), r.created_at
			  FROM roles r
			  JOIN user_roles ur ON r.id = ur.role_id
			  WHERE ur.user_id = $1`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []*models.Role{}
	for rows.Next() {
		role := &models.Role{}
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// GetUserWithRoles re-fetches the caller's user record with roles attached.
// Privilege checks go through this, never through client-supplied claims.
func GetUserWithRoles(db *sql.DB, userID string) (*models.User, error) {
	user, err := GetUserByID(db, userID)
	if err != nil {
		return nil, err
	}
	roles, err := GetUserRoles(db, userID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

func UpdateUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}

// CreateUser inserts a user with a hashed password and assigns the named role.
func CreateUser(db *sql.DB, user *models.User, roleName string) error {
	hashed, err := hashPassword(user.Password)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO users (email, password, first_name, last_name, phone)
			  VALUES ($1, $2, $3, $4, NULLIF($5, ''))
			  RETURNING id, created_at, updated_at`
	err = tx.QueryRow(query, user.Email, hashed, user.FirstName, user.LastName, user.Phone).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return err
	}

	if roleName != "" {
		_, err = tx.Exec(`INSERT INTO user_roles (user_id, role_id)
						  SELECT $1, id FROM roles WHERE name = $2
						  ON CONFLICT DO NOTHING`, user.ID, roleName)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// AssignUserRole links an existing user to a role by name.
func AssignUserRole(db *sql.DB, userID string, roleName string) error {
	query := `INSERT INTO user_roles (user_id, role_id)
			  SELECT $1, id FROM roles WHERE name = $2
			  ON CONFLICT DO NOTHING`
	_, err := db.Exec(query, userID, roleName)
	return err
}

// Batch and student queries feed fee provisioning; the full admissions
// module lives outside this subsystem.

func CreateBatch(db *sql.DB, batch *models.Batch) error {
	query := `INSERT INTO batches (program, session) VALUES ($1, $2)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, batch.Program, batch.Session).
		Scan(&batch.ID, &batch.CreatedAt, &batch.UpdatedAt)
}

func GetAllBatches(db *sql.DB) ([]*models.Batch, error) {
	query := `SELECT id, program, session, created_at, updated_at
			  FROM batches WHERE deleted_at IS NULL
			  ORDER BY program, session`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	batches := []*models.Batch{}
	for rows.Next() {
		b := &models.Batch{}
		if err := rows.Scan(&b.ID, &b.Program, &b.Session, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}

func CreateStudent(db *sql.DB, student *models.Student) error {
	query := `INSERT INTO students (user_id, batch_id, first_name, last_name, roll_no)
			  VALUES ($1, $2, $3, $4, NULLIF($5, ''))
			  RETURNING id, is_active, created_at, updated_at`
	return db.QueryRow(query, student.UserID, student.BatchID, student.FirstName, student.LastName, student.RollNo).
		Scan(&student.ID, &student.IsActive, &student.CreatedAt, &student.UpdatedAt)
}

func GetAllStudents(db *sql.DB) ([]*models.Student, error) {
	query := `SELECT s.id, s.user_id, s.batch_id, s.first_name, s.last_name, COALESCE(s.roll_no, ''),
			  s.is_active, s.created_at, s.updated_at, b.program, b.session
			  FROM students s
			  JOIN batches b ON s.batch_id = b.id
			  WHERE s.deleted_at IS NULL
			  ORDER BY s.last_name, s.first_name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s := &models.Student{Batch: &models.Batch{}}
		err := rows.Scan(
			&s.ID, &s.UserID, &s.BatchID, &s.FirstName, &s.LastName, &s.RollNo,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt, &s.Batch.Program, &s.Batch.Session,
		)
		if err != nil {
			return nil, err
		}
		s.Batch.ID = s.BatchID
		students = append(students, s)
	}
	return students, nil
}

// GetActiveStudentIDsByCohort returns ids of active students whose batch
// matches (program, session). Used to provision fee payments.
func GetActiveStudentIDsByCohort(db *sql.DB, program, session string) ([]string, error) {
	query := `SELECT s.id
			  FROM students s
			  JOIN batches b ON s.batch_id = b.id
			  WHERE b.program = $1 AND b.session = $2
			  AND s.is_active = true AND s.deleted_at IS NULL`

	rows, err := db.Query(query, program, session)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetStudentIDForUser resolves the student record belonging to a user
// account. Student-facing fee views are scoped through this, never through a
// client-supplied student id.
func GetStudentIDForUser(db *sql.DB, userID string) (string, error) {
	var id string
	query := `SELECT id FROM students WHERE user_id = $1 AND deleted_at IS NULL`
	err := db.QueryRow(query, userID).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}
