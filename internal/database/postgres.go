package database

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

var PostgresDB *sql.DB

// ConnectPostgres connects to the PostgreSQL database holding the admin
// audit log and creates its tables.
func ConnectPostgres(postgresURI string) error {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return err
	}

	if err = InitPostgresTables(db); err != nil {
		_ = db.Close()
		return err
	}

	PostgresDB = db
	return nil
}

// PostgresSchema is applied in order on every start.
var PostgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS admin_audit_log (
		id UUID PRIMARY KEY,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		admin_id VARCHAR(24) NOT NULL,
		admin_email VARCHAR(255) NOT NULL,
		action VARCHAR(50) NOT NULL,
		target_id VARCHAR(24) NOT NULL,
		detail TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_admin_audit_log_created_at ON admin_audit_log(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_admin_audit_log_target_id ON admin_audit_log(target_id)`,
}

// InitPostgresTables creates all necessary tables if they don't exist
func InitPostgresTables(db *sql.DB) error {
	for _, query := range PostgresSchema {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// DisconnectPostgres closes the PostgreSQL connection
func DisconnectPostgres() error {
	if PostgresDB != nil {
		return PostgresDB.Close()
	}
	return nil
}
