package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/me/langparse/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	// Every connection to ":memory:" is a separate database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

const resolutionColumns = `id, language, uri, branch, descriptor_path, commit_sha, valid, messages, secondary_count, duration_ms, created_at`

func (s *SQLiteStore) CreateResolution(ctx context.Context, r *model.Resolution) error {
	s.logger.Debug("sql", "op", "insert", "table", "resolutions", "id", r.ID)

	messages := r.Messages
	if messages == nil {
		messages = map[string]string{}
	}
	messagesJSON, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal messages: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO resolutions (`+resolutionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, string(r.Language), r.URI, r.Branch, r.DescriptorPath, r.Commit,
		boolToInt(r.Valid), string(messagesJSON), r.SecondaryCount, r.DurationMS,
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// GetResolution returns nil, nil when id is unknown.
func (s *SQLiteStore) GetResolution(ctx context.Context, id string) (*model.Resolution, error) {
	s.logger.Debug("sql", "op", "select", "table", "resolutions", "id", id)

	row := s.db.QueryRowContext(ctx,
		`SELECT `+resolutionColumns+` FROM resolutions WHERE id = ?`, id)
	r, err := scanResolution(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *SQLiteStore) ListResolutions(ctx context.Context, opts model.ListOptions) ([]*model.Resolution, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "resolutions", "limit", opts.Limit, "offset", opts.Offset)
	opts.Clamp()

	var whereClauses []string
	var countArgs []any
	if opts.Language != "" {
		whereClauses = append(whereClauses, "language = ?")
		countArgs = append(countArgs, string(opts.Language))
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM resolutions` + whereSQL
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := `SELECT ` + resolutionColumns + ` FROM resolutions` + whereSQL +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	listArgs := append(countArgs, opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*model.Resolution
	for rows.Next() {
		r, err := scanResolution(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResolution(sc scanner) (*model.Resolution, error) {
	var r model.Resolution
	var language, messagesJSON, createdAt string
	var valid int
	if err := sc.Scan(&r.ID, &language, &r.URI, &r.Branch, &r.DescriptorPath, &r.Commit,
		&valid, &messagesJSON, &r.SecondaryCount, &r.DurationMS, &createdAt); err != nil {
		return nil, err
	}
	r.Language = model.Language(language)
	r.Valid = valid != 0
	if err := json.Unmarshal([]byte(messagesJSON), &r.Messages); err != nil {
		return nil, fmt.Errorf("unmarshal messages: %w", err)
	}
	if len(r.Messages) == 0 {
		r.Messages = nil
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	r.CreatedAt = t
	return &r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
