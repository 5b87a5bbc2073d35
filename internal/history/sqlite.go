package history

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS translations (
	id INTEGER PRIMARY KEY,
	original TEXT NOT NULL DEFAULT '',
	translated TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);
CREATE INDEX IF NOT EXISTS idx_translations_created_at ON translations (created_at DESC);
`

// SQLiteStore persists translation records in a local sqlite file. Useful
// for single-user installations without a remote document store.
type SQLiteStore struct {
	db   *sql.DB
	node *snowflake.Node
}

func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snowflake node: %w", err)
	}

	return &SQLiteStore{db: db, node: node}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, original, translated string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store is not initialized")
	}

	id := s.node.Generate().Int64()
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO translations (id, original, translated) VALUES (?, ?, ?)`,
		id, original, translated,
	)
	if err != nil {
		return fmt.Errorf("insert translation record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListAll(ctx context.Context) ([]Record, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlite store is not initialized")
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, original, translated, created_at FROM translations ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query translation records: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, 32)
	for rows.Next() {
		var id int64
		var original, translated, createdAt string
		if err := rows.Scan(&id, &original, &translated, &createdAt); err != nil {
			return nil, fmt.Errorf("scan translation record: %w", err)
		}
		if original == "" || translated == "" {
			continue
		}
		records = append(records, Record{
			ID:         strconv.FormatInt(id, 10),
			Original:   original,
			Translated: translated,
			CreatedAt:  parseSQLiteTime(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate translation records: %w", err)
	}

	return records, nil
}

func (s *SQLiteStore) ClearAll(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store is not initialized")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT id FROM translations`)
	if err != nil {
		return fmt.Errorf("snapshot translation ids: %w", err)
	}

	ids := make([]any, 0, 32)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan translation id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate translation ids: %w", err)
	}
	rows.Close()

	if len(ids) == 0 {
		return tx.Commit()
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	if _, err := tx.ExecContext(ctx, `DELETE FROM translations WHERE id IN (`+placeholders+`)`, ids...); err != nil {
		return fmt.Errorf("delete translation records: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func parseSQLiteTime(raw string) time.Time {
	for _, layout := range []string{"2006-01-02T15:04:05.999Z", time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}
