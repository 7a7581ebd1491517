package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the ledger schema and applies necessary updates.
// Every statement is idempotent so the app can run it on each start.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	tables := []string{
		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(50) UNIQUE NOT NULL,
			description TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone VARCHAR(20),
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, role_id)
		)`,
		`CREATE TABLE IF NOT EXISTS batches (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			program VARCHAR(100) NOT NULL,
			session VARCHAR(50) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID REFERENCES users(id),
			batch_id UUID NOT NULL REFERENCES batches(id),
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			roll_no VARCHAR(30),
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS fee_structures (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			program VARCHAR(100) NOT NULL,
			session VARCHAR(50) NOT NULL,
			semester INT NOT NULL,
			total_amount BIGINT NOT NULL CHECK (total_amount > 0),
			currency VARCHAR(3) DEFAULT 'UGX' NOT NULL,
			due_date DATE NOT NULL,
			description TEXT,
			is_active BOOLEAN DEFAULT true NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE,
			CONSTRAINT uq_fee_structures_cohort UNIQUE (program, session, semester)
		)`,
		`CREATE TABLE IF NOT EXISTS fee_payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			fee_structure_id UUID NOT NULL REFERENCES fee_structures(id),
			amount_paid BIGINT NOT NULL DEFAULT 0,
			status VARCHAR(10) NOT NULL DEFAULT 'unpaid',
			transactions JSONB NOT NULL DEFAULT '[]',
			is_locked BOOLEAN NOT NULL DEFAULT false,
			locked_by UUID,
			locked_at TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			CONSTRAINT uq_fee_payments_student_structure UNIQUE (student_id, fee_structure_id)
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) UNIQUE NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			category_id UUID NOT NULL REFERENCES categories(id),
			title VARCHAR(255) NOT NULL,
			amount BIGINT NOT NULL CHECK (amount > 0),
			currency VARCHAR(3) DEFAULT 'UGX' NOT NULL,
			paid_on DATE NOT NULL,
			notes TEXT,
			is_locked BOOLEAN NOT NULL DEFAULT false,
			locked_by UUID,
			locked_at TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS salaries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			employee_id UUID NOT NULL REFERENCES users(id),
			month VARCHAR(7) NOT NULL,
			base_amount BIGINT NOT NULL CHECK (base_amount > 0),
			deductions BIGINT NOT NULL DEFAULT 0 CHECK (deductions >= 0 AND deductions <= base_amount),
			net_amount BIGINT NOT NULL,
			status VARCHAR(10) NOT NULL DEFAULT 'pending',
			paid_on DATE,
			notes TEXT,
			is_locked BOOLEAN NOT NULL DEFAULT false,
			locked_by UUID,
			locked_at TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			action VARCHAR(15) NOT NULL,
			entity_type VARCHAR(50) NOT NULL,
			entity_id VARCHAR(100) NOT NULL,
			performed_by UUID NOT NULL,
			changes JSONB NOT NULL DEFAULT '[]',
			reason TEXT,
			ip_address VARCHAR(45),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
	}

	for _, q := range tables {
		if _, err := db.Exec(q); err != nil {
			log.Printf("Error creating ledger tables: %v", err)
			return err
		}
	}

	migrations := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_salaries_employee_month
			ON salaries(employee_id, month) WHERE deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_fee_payments_student_id ON fee_payments(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_fee_payments_structure_id ON fee_payments(fee_structure_id)`,
		`CREATE INDEX IF NOT EXISTS idx_fee_payments_status ON fee_payments(status)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_paid_on ON expenses(paid_on)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_deleted_at ON expenses(deleted_at)`,
		`CREATE INDEX IF NOT EXISTS idx_salaries_employee_id ON salaries(employee_id)`,
		`CREATE INDEX IF NOT EXISTS idx_students_batch_id ON students(batch_id)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_logs_entity ON audit_logs(entity_type, entity_id)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_logs_created_at ON audit_logs(created_at)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			log.Printf("Error running ledger migration: %v", err)
			// Continue as some might be duplicate index errors depending on PG version
		}
	}

	if err := installAuditGuard(db); err != nil {
		return err
	}

	if err := seedRoles(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// installAuditGuard makes audit_logs append-only at the database level. Any
// UPDATE or DELETE on the table raises, regardless of the connected role.
func installAuditGuard(db *sql.DB) error {
	fn := `
		CREATE OR REPLACE FUNCTION audit_logs_reject_mutation() RETURNS trigger AS $$
		BEGIN
			RAISE EXCEPTION 'audit_logs records are immutable';
		END;
		$$ LANGUAGE plpgsql;
	`
	if _, err := db.Exec(fn); err != nil {
		log.Printf("Failed to install audit guard function: %v", err)
		return err
	}

	trigger := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_trigger WHERE tgname = 'audit_logs_immutable'
			) THEN
				CREATE TRIGGER audit_logs_immutable
					BEFORE UPDATE OR DELETE ON audit_logs
					FOR EACH ROW EXECUTE FUNCTION audit_logs_reject_mutation();
			END IF;
		END $$;
	`
	if _, err := db.Exec(trigger); err != nil {
		log.Printf("Failed to install audit guard trigger: %v", err)
		return err
	}
	return nil
}

func seedRoles(db *sql.DB) error {
	seeds := []string{
		`INSERT INTO roles (name, description) VALUES ('root_admin', 'Full financial privileges') ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO roles (name, description) VALUES ('accountant', 'Records payments and expenses') ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO roles (name, description) VALUES ('student', 'Views own fee ledger') ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO categories (name, is_active) VALUES ('Salaries', true) ON CONFLICT (name) DO NOTHING`,
	}

	for _, s := range seeds {
		if _, err := db.Exec(s); err != nil {
			log.Printf("Error seeding ledger data: %v", err)
		}
	}
	return nil
}
