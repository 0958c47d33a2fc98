package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists ranges in a local sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ RangeStore = (*SQLiteStore)(nil)

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// WAL mode reduces write latency by avoiding full fsync on every commit.
	// synchronous=NORMAL is safe with WAL and significantly faster than the default FULL.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set sqlite pragmas: %w", err)
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, rec RangeRecord) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ranges(player, category, position, name, payload_json, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(player, category, position, name) DO UPDATE SET
			payload_json = excluded.payload_json,
			updated_at = excluded.updated_at`,
		rec.Key.Player, rec.Key.Category, rec.Key.Position, rec.Key.Name,
		string(rec.Payload), now, now)
	if err != nil {
		return fmt.Errorf("save range: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, key RangeKey) (*RangeRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT payload_json, created_at, updated_at FROM ranges
		WHERE player = ? AND category = ? AND position = ? AND name = ?`,
		key.Player, key.Category, key.Position, key.Name)

	var payload, created, updated string
	if err := row.Scan(&payload, &created, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("load range: %w", err)
	}
	rec := &RangeRecord{Key: key, Payload: []byte(payload)}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return rec, nil
}

func (s *SQLiteStore) List(ctx context.Context, player, position string) ([]RangeRecord, error) {
	query := `
		SELECT player, category, position, name, payload_json, created_at, updated_at
		FROM ranges WHERE player = ?`
	args := []any{player}
	if position != "" {
		query += ` AND position = ?`
		args = append(args, position)
	}
	query += ` ORDER BY category, position, name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ranges: %w", err)
	}
	defer rows.Close()

	var out []RangeRecord
	for rows.Next() {
		var rec RangeRecord
		var payload, created, updated string
		if err := rows.Scan(&rec.Key.Player, &rec.Key.Category, &rec.Key.Position, &rec.Key.Name,
			&payload, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan range: %w", err)
		}
		rec.Payload = []byte(payload)
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, key RangeKey) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM ranges WHERE player = ? AND category = ? AND position = ? AND name = ?`,
		key.Player, key.Category, key.Position, key.Name)
	if err != nil {
		return false, fmt.Errorf("delete range: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete range: %w", err)
	}
	return n > 0, nil
}
