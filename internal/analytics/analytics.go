package analytics

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/apiclient"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/config"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/migrations"
)

const timestampLayout = "2006-01-02 15:04:05"

// Entry is one recorded round trip to the generation service.
// Only call metadata is kept, never the generated records.
type Entry struct {
	ID             string
	Operation      string
	URL            string
	EntityType     string
	RequestedCount int
	RecordCount    int
	StatusCode     int
	ResponseSize   int64
	DurationMs     int64
	ErrorMessage   string
	Timestamp      time.Time
}

// Stats aggregates entries per operation and entity type
type Stats struct {
	Operation     string
	EntityType    string
	TotalCalls    int
	SuccessCount  int
	ErrorCount    int
	NetworkErrors int // no response received (status code 0)
	TotalRecords  int
	AvgDurationMs float64
	MinDurationMs int64
	MaxDurationMs int64
	StatusCodes   map[int]int
	LastCalled    time.Time
}

type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create analytics directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open analytics database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to analytics database: %w", err)
	}

	// Run database migrations
	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// EntryFromCall converts an API client call into an entry
func EntryFromCall(call apiclient.Call) Entry {
	e := Entry{
		Operation:      call.Operation,
		URL:            call.URL,
		EntityType:     call.EntityType,
		RequestedCount: call.Count,
		RecordCount:    call.Records,
		StatusCode:     call.StatusCode,
		ResponseSize:   int64(call.ResponseSize),
		DurationMs:     call.Duration.Milliseconds(),
		Timestamp:      call.Timestamp,
	}
	if call.Err != nil {
		e.ErrorMessage = call.Err.Error()
	}
	return e
}

func (m *Manager) Save(entry Entry) error {
	query := `
		INSERT INTO api_calls (id, operation, url, entity_type, requested_count, record_count,
			status_code, response_size, duration_ms, error_message, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	// Format timestamp for SQLite in local time (YYYY-MM-DD HH:MM:SS)
	timestampStr := entry.Timestamp.Local().Format(timestampLayout)

	var errorMsg sql.NullString
	if entry.ErrorMessage != "" {
		errorMsg = sql.NullString{String: entry.ErrorMessage, Valid: true}
	}

	_, err := m.db.Exec(query,
		entry.ID,
		entry.Operation,
		entry.URL,
		entry.EntityType,
		entry.RequestedCount,
		entry.RecordCount,
		entry.StatusCode,
		entry.ResponseSize,
		entry.DurationMs,
		errorMsg,
		timestampStr,
	)
	if err != nil {
		return fmt.Errorf("failed to save analytics entry: %w", err)
	}

	return nil
}

// Recent returns the latest entries, newest first
func (m *Manager) Recent(limit int) ([]Entry, error) {
	query := `
		SELECT id, operation, url, entity_type, requested_count, record_count,
		       status_code, response_size, duration_ms, error_message, timestamp
		FROM api_calls
		ORDER BY timestamp DESC, rowid DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var timestamp string
		var errorMsg sql.NullString

		err := rows.Scan(
			&e.ID,
			&e.Operation,
			&e.URL,
			&e.EntityType,
			&e.RequestedCount,
			&e.RecordCount,
			&e.StatusCode,
			&e.ResponseSize,
			&e.DurationMs,
			&errorMsg,
			&timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analytics entry: %w", err)
		}

		if errorMsg.Valid {
			e.ErrorMessage = errorMsg.String
		}
		e.Timestamp = parseTimestamp(timestamp)

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Stats aggregates all entries per operation and entity type, most recent first
func (m *Manager) Stats() ([]Stats, error) {
	// Use a subquery with JSON aggregation to get status codes in a single query
	query := `
		WITH status_codes_agg AS (
			SELECT
				operation,
				entity_type,
				json_group_object(CAST(status_code AS TEXT), count) as status_codes_json
			FROM (
				SELECT operation, entity_type, status_code, COUNT(*) as count
				FROM api_calls
				GROUP BY operation, entity_type, status_code
			)
			GROUP BY operation, entity_type
		)
		SELECT
			a.operation,
			a.entity_type,
			COUNT(*) as total_calls,
			SUM(CASE WHEN a.status_code >= 200 AND a.status_code < 300 AND a.error_message IS NULL THEN 1 ELSE 0 END) as success_count,
			SUM(CASE WHEN a.error_message IS NOT NULL THEN 1 ELSE 0 END) as error_count,
			SUM(CASE WHEN a.status_code = 0 THEN 1 ELSE 0 END) as network_errors,
			SUM(a.record_count) as total_records,
			AVG(a.duration_ms) as avg_duration,
			MIN(a.duration_ms) as min_duration,
			MAX(a.duration_ms) as max_duration,
			MAX(a.timestamp) as last_called,
			COALESCE(s.status_codes_json, '{}') as status_codes_json
		FROM api_calls a
		LEFT JOIN status_codes_agg s ON a.operation = s.operation AND a.entity_type = s.entity_type
		GROUP BY a.operation, a.entity_type
		ORDER BY last_called DESC, a.operation, a.entity_type
	`

	rows, err := m.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	defer rows.Close()

	var statsList []Stats
	for rows.Next() {
		var s Stats
		var lastCalled sql.NullString
		var statusCodesJSON string

		err := rows.Scan(
			&s.Operation,
			&s.EntityType,
			&s.TotalCalls,
			&s.SuccessCount,
			&s.ErrorCount,
			&s.NetworkErrors,
			&s.TotalRecords,
			&s.AvgDurationMs,
			&s.MinDurationMs,
			&s.MaxDurationMs,
			&lastCalled,
			&statusCodesJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}

		if lastCalled.Valid {
			s.LastCalled = parseTimestamp(lastCalled.String)
		}

		// Parse status codes from JSON
		s.StatusCodes = make(map[int]int)
		var statusCodesMap map[string]int
		if err := json.Unmarshal([]byte(statusCodesJSON), &statusCodesMap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal status codes: %w", err)
		}
		for codeStr, count := range statusCodesMap {
			var code int
			if _, err := fmt.Sscanf(codeStr, "%d", &code); err == nil {
				s.StatusCodes[code] = count
			}
		}

		statsList = append(statsList, s)
	}

	return statsList, rows.Err()
}

// SuccessRate returns the share of successful calls in percent
func (s Stats) SuccessRate() float64 {
	if s.TotalCalls == 0 {
		return 0
	}
	return float64(s.SuccessCount) / float64(s.TotalCalls) * 100
}

func (m *Manager) Clear() error {
	if _, err := m.db.Exec("DELETE FROM api_calls"); err != nil {
		return fmt.Errorf("failed to clear analytics: %w", err)
	}
	return nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}

// parseTimestamp reads the local-time format Save writes
func parseTimestamp(value string) time.Time {
	t, err := time.ParseInLocation(timestampLayout, value, time.Local)
	if err == nil {
		return t
	}
	// Try RFC3339 format as fallback
	if t, err = time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}
