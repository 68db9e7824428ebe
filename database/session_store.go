package database

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"whoannex/extraction"
)

// SessionStore хранит историю запусков извлечения в SQLite
type SessionStore struct {
	db *sql.DB
}

// SessionInfo сводка одной сессии извлечения
type SessionInfo struct {
	ID            string
	SourceFile    string
	StartedAt     time.Time
	FinishedAt    *time.Time
	Status        string
	Countries     int
	Indicators    int
	SkippedRows   int
	MinIndicators int
}

// ValueChange изменение значения между двумя сессиями
type ValueChange struct {
	LocationCode string
	CountryName  string
	Indicator    string
	OldValue     *float64 // nil — индикатор появился
	NewValue     *float64 // nil — индикатор пропал
}

// OpenSessionStore открывает (или создает) базу истории сессий
func OpenSessionStore(path string) (*SessionStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to session database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := MigrateExtractionSessions(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SessionStore{db: db}, nil
}

// Close закрывает соединение с базой
func (s *SessionStore) Close() error {
	return s.db.Close()
}

// BeginSession регистрирует новый запуск извлечения
func (s *SessionStore) BeginSession(sourceFile string, minIndicators int) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO extraction_sessions (id, source_file, status, min_indicators) VALUES (?, ?, 'running', ?)`,
		id, sourceFile, minIndicators,
	)
	if err != nil {
		return "", fmt.Errorf("failed to begin session: %w", err)
	}
	return id, nil
}

// CompleteSession фиксирует успешное завершение и сохраняет значения
func (s *SessionStore) CompleteSession(id string, result *extraction.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO extraction_values (session_id, location_code, country_name, indicator, value) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare values insert: %w", err)
	}
	defer stmt.Close()

	for code, country := range result.Dataset {
		for indicator, value := range country.Indicators {
			if _, err := stmt.Exec(id, code, country.Name, indicator, value); err != nil {
				return fmt.Errorf("failed to store value for %s/%s: %w", code, indicator, err)
			}
		}
	}

	_, err = tx.Exec(
		`UPDATE extraction_sessions
		 SET status = 'completed', finished_at = CURRENT_TIMESTAMP,
		     countries = ?, indicators = ?, skipped_rows = ?
		 WHERE id = ?`,
		len(result.Dataset), result.Dataset.TotalIndicators(), result.SkippedRows, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}

	return tx.Commit()
}

// FailSession помечает сессию как неудачную
func (s *SessionStore) FailSession(id string) error {
	_, err := s.db.Exec(
		`UPDATE extraction_sessions SET status = 'failed', finished_at = CURRENT_TIMESTAMP WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark session failed: %w", err)
	}
	return nil
}

// ListSessions возвращает сессии, новые первыми
func (s *SessionStore) ListSessions(limit int) ([]SessionInfo, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, source_file, started_at, finished_at, status, countries, indicators, skipped_rows, min_indicators
		 FROM extraction_sessions ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var info SessionInfo
		var finished sql.NullTime
		if err := rows.Scan(&info.ID, &info.SourceFile, &info.StartedAt, &finished, &info.Status,
			&info.Countries, &info.Indicators, &info.SkippedRows, &info.MinIndicators); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			info.FinishedAt = &t
		}
		sessions = append(sessions, info)
	}
	return sessions, rows.Err()
}

// LoadSessionValues загружает значения сессии как набор данных
func (s *SessionStore) LoadSessionValues(id string) (extraction.Dataset, error) {
	rows, err := s.db.Query(
		`SELECT location_code, country_name, indicator, value FROM extraction_values WHERE session_id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load session values: %w", err)
	}
	defer rows.Close()

	dataset := make(extraction.Dataset)
	for rows.Next() {
		var code, name, indicator string
		var value float64
		if err := rows.Scan(&code, &name, &indicator, &value); err != nil {
			return nil, fmt.Errorf("failed to scan value row: %w", err)
		}
		country := dataset[code]
		if country == nil {
			country = &extraction.CountryData{Name: name, Indicators: make(map[string]float64)}
			dataset[code] = country
		}
		country.Indicators[indicator] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(dataset) == 0 {
		return nil, fmt.Errorf("session %s has no stored values", id)
	}
	return dataset, nil
}

// DiffSessions сравнивает значения двух сессий.
// Возвращает изменившиеся, появившиеся и пропавшие значения,
// отсортированные по коду страны и индикатору.
func (s *SessionStore) DiffSessions(oldID, newID string) ([]ValueChange, error) {
	oldData, err := s.LoadSessionValues(oldID)
	if err != nil {
		return nil, err
	}
	newData, err := s.LoadSessionValues(newID)
	if err != nil {
		return nil, err
	}

	var changes []ValueChange

	for code, oldCountry := range oldData {
		newCountry := newData[code]
		for indicator, oldValue := range oldCountry.Indicators {
			ov := oldValue
			if newCountry == nil {
				changes = append(changes, ValueChange{
					LocationCode: code, CountryName: oldCountry.Name,
					Indicator: indicator, OldValue: &ov,
				})
				continue
			}
			newValue, ok := newCountry.Indicators[indicator]
			if !ok {
				changes = append(changes, ValueChange{
					LocationCode: code, CountryName: oldCountry.Name,
					Indicator: indicator, OldValue: &ov,
				})
				continue
			}
			if newValue != oldValue {
				nv := newValue
				changes = append(changes, ValueChange{
					LocationCode: code, CountryName: oldCountry.Name,
					Indicator: indicator, OldValue: &ov, NewValue: &nv,
				})
			}
		}
	}

	for code, newCountry := range newData {
		oldCountry := oldData[code]
		for indicator, newValue := range newCountry.Indicators {
			if oldCountry != nil {
				if _, ok := oldCountry.Indicators[indicator]; ok {
					continue
				}
			}
			nv := newValue
			changes = append(changes, ValueChange{
				LocationCode: code, CountryName: newCountry.Name,
				Indicator: indicator, NewValue: &nv,
			})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		if changes[i].LocationCode != changes[j].LocationCode {
			return changes[i].LocationCode < changes[j].LocationCode
		}
		return changes[i].Indicator < changes[j].Indicator
	})

	return changes, nil
}
