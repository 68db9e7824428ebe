package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
)

// MigrateExtractionSessions создает таблицы учета запусков извлечения.
// Каждый запуск скрипта фиксируется сессией; значения индикаторов
// сохраняются для сравнения между запусками.
func MigrateExtractionSessions(db *sql.DB) error {
	log.Println("Running migration: creating extraction_sessions tables...")

	createSessionsSQL := `
		CREATE TABLE IF NOT EXISTS extraction_sessions (
			id TEXT PRIMARY KEY,
			source_file TEXT NOT NULL,
			started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			finished_at TIMESTAMP,
			status TEXT CHECK(status IN ('running', 'completed', 'failed')) DEFAULT 'running',
			countries INTEGER DEFAULT 0,
			indicators INTEGER DEFAULT 0,
			skipped_rows INTEGER DEFAULT 0,
			min_indicators INTEGER DEFAULT 0
		)
	`
	if _, err := db.Exec(createSessionsSQL); err != nil {
		errStr := strings.ToLower(err.Error())
		if !strings.Contains(errStr, "already exists") {
			return fmt.Errorf("failed to create extraction_sessions table: %w", err)
		}
		log.Println("Table extraction_sessions already exists, skipping creation")
	}

	createValuesSQL := `
		CREATE TABLE IF NOT EXISTS extraction_values (
			session_id TEXT NOT NULL,
			location_code TEXT NOT NULL,
			country_name TEXT NOT NULL,
			indicator TEXT NOT NULL,
			value REAL NOT NULL,
			PRIMARY KEY (session_id, location_code, indicator),
			FOREIGN KEY(session_id) REFERENCES extraction_sessions(id) ON DELETE CASCADE
		)
	`
	if _, err := db.Exec(createValuesSQL); err != nil {
		errStr := strings.ToLower(err.Error())
		if !strings.Contains(errStr, "already exists") {
			return fmt.Errorf("failed to create extraction_values table: %w", err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_extraction_sessions_started_at ON extraction_sessions(started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_extraction_sessions_status ON extraction_sessions(status)`,
		`CREATE INDEX IF NOT EXISTS idx_extraction_values_session_id ON extraction_values(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_extraction_values_location_code ON extraction_values(location_code)`,
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			errStr := strings.ToLower(err.Error())
			if !strings.Contains(errStr, "duplicate index") && !strings.Contains(errStr, "already exists") {
				return fmt.Errorf("failed to create index: %w - %s", err, indexSQL)
			}
		}
	}

	log.Println("Migration completed: extraction_sessions tables ready")
	return nil
}
