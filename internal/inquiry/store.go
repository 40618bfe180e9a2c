package inquiry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Inquiry is a stored submission.
type Inquiry struct {
	ID           string          `json:"id"`
	Kind         Kind            `json:"kind"`
	CreatedAt    time.Time       `json:"createdAt"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Organization string          `json:"organization,omitempty"`
	Subject      string          `json:"subject"`
	Payload      json.RawMessage `json:"payload"`
}

// Store persists inquiries.
type Store interface {
	Save(ctx context.Context, inq Inquiry) error
	List(ctx context.Context, kind Kind, limit int) ([]Inquiry, error)
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (or creates) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS inquiries (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		organization TEXT,
		subject TEXT,
		payload BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_inquiries_kind ON inquiries(kind);
	CREATE INDEX IF NOT EXISTS idx_inquiries_created_at ON inquiries(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save inserts inq.
func (s *SQLiteStore) Save(ctx context.Context, inq Inquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO inquiries (id, kind, created_at, name, email, organization, subject, payload) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		inq.ID, string(inq.Kind), inq.CreatedAt.UnixNano(), inq.Name, inq.Email, inq.Organization, inq.Subject, []byte(inq.Payload),
	)
	if err != nil {
		return fmt.Errorf("insert inquiry: %w", err)
	}
	return nil
}

// List returns the newest inquiries first. An empty kind lists all kinds;
// limit <= 0 means no limit.
func (s *SQLiteStore) List(ctx context.Context, kind Kind, limit int) ([]Inquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, created_at, name, email, organization, subject, payload FROM inquiries
		 WHERE (? = '' OR kind = ?) ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		string(kind), string(kind), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query inquiries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Inquiry
	for rows.Next() {
		var (
			inq       Inquiry
			kindStr   string
			createdNS int64
			org, subj sql.NullString
			payload   []byte
		)
		if err := rows.Scan(&inq.ID, &kindStr, &createdNS, &inq.Name, &inq.Email, &org, &subj, &payload); err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		inq.Kind = Kind(kindStr)
		inq.CreatedAt = time.Unix(0, createdNS).UTC()
		inq.Organization = org.String
		inq.Subject = subj.String
		inq.Payload = payload
		out = append(out, inq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inquiries: %w", err)
	}
	return out, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
