package oplog

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/ports"
)

// SQLiteLog keeps records in a private in-memory SQLite database, so the log
// still disappears with the process. If the database cannot be opened it
// degrades to a MemoryLog.
type SQLiteLog struct {
	db       *sql.DB
	capacity int
	mu       sync.Mutex
	fallback *MemoryLog
}

// NewSQLiteLog opens a fresh in-memory database.
func NewSQLiteLog(capacity int) *SQLiteLog {
	if capacity <= 0 {
		capacity = domain.DefaultLogCapacity
	}
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return &SQLiteLog{capacity: capacity, fallback: NewMemoryLog(capacity)}
	}
	// every pooled connection to ":memory:" would see its own database
	db.SetMaxOpenConns(1)
	store := &SQLiteLog{db: db, capacity: capacity}
	if err := store.init(); err != nil {
		_ = db.Close()
		return &SQLiteLog{capacity: capacity, fallback: NewMemoryLog(capacity)}
	}
	return store
}

func (s *SQLiteLog) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS operations (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT,
		result TEXT,
		algorithm TEXT,
		cipher_key TEXT,
		direction TEXT,
		timestamp TEXT
	);`)
	return err
}

// Record inserts rec and prunes rows beyond the capacity in one transaction.
func (s *SQLiteLog) Record(rec domain.OperationRecord) error {
	if s.db == nil {
		return s.fallback.Record(rec)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT INTO operations (id, result, algorithm, cipher_key, direction, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Result,
		rec.Algorithm,
		rec.Key,
		string(rec.Direction),
		rec.Timestamp.Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM operations WHERE seq NOT IN
		(SELECT seq FROM operations ORDER BY seq DESC LIMIT ?)`, s.capacity); err != nil {
		return fmt.Errorf("prune operations: %w", err)
	}
	return tx.Commit()
}

// Records returns the log newest first.
func (s *SQLiteLog) Records() ([]domain.OperationRecord, error) {
	if s.db == nil {
		return s.fallback.Records()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, result, algorithm, cipher_key, direction, timestamp
		FROM operations ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.OperationRecord, 0, s.capacity)
	for rows.Next() {
		var rec domain.OperationRecord
		var direction, ts string
		if err := rows.Scan(&rec.ID, &rec.Result, &rec.Algorithm, &rec.Key, &direction, &ts); err != nil {
			return nil, err
		}
		rec.Direction = domain.Direction(direction)
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rec.Timestamp = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteLog) Len() int {
	if s.db == nil {
		return s.fallback.Len()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM operations").Scan(&n); err != nil {
		return 0
	}
	return n
}

// Clear deletes all rows.
func (s *SQLiteLog) Clear() error {
	if s.db == nil {
		return s.fallback.Clear()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM operations")
	return err
}

// Degraded reports whether the log fell back to memory.
func (s *SQLiteLog) Degraded() bool {
	return s.db == nil
}

// Close releases the database.
func (s *SQLiteLog) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

var _ ports.OperationLog = (*SQLiteLog)(nil)

// New picks the log backend named in settings.
func New(settings domain.HistorySettings) (ports.OperationLog, error) {
	switch settings.Backend {
	case "", domain.HistoryBackendMemory:
		return NewMemoryLog(domain.DefaultLogCapacity), nil
	case domain.HistoryBackendSQLite:
		return NewSQLiteLog(domain.DefaultLogCapacity), nil
	default:
		return nil, fmt.Errorf("unsupported history backend %q", settings.Backend)
	}
}
