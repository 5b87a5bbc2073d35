package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// translationRow maps the translations table.
type translationRow struct {
	ID         string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Original   string    `gorm:"column:original;type:text;not null;default:''"`
	Translated string    `gorm:"column:translated;type:text;not null;default:''"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (translationRow) TableName() string { return "translations" }

// PostgresStore persists translation records in a postgres table through gorm.
type PostgresStore struct {
	gdb   *gorm.DB
	sqlDB *sql.DB
}

func NewPostgresStore(ctx context.Context, databaseURL string, maxConns int) (*PostgresStore, error) {
	gdb, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get gorm sql db: %w", err)
	}

	if maxConns <= 0 {
		maxConns = 8
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := gdb.WithContext(ctx).AutoMigrate(&translationRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("auto-migrate schema: %w", err)
	}

	return &PostgresStore{gdb: gdb, sqlDB: sqlDB}, nil
}

func (s *PostgresStore) Append(ctx context.Context, original, translated string) error {
	if s == nil || s.gdb == nil {
		return fmt.Errorf("postgres store is not initialized")
	}

	// The server assigns both id and created_at.
	res := s.gdb.WithContext(ctx).Exec(
		`INSERT INTO translations (original, translated) VALUES (?, ?)`,
		original, translated,
	)
	if res.Error != nil {
		return fmt.Errorf("insert translation record: %w", res.Error)
	}
	return nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]Record, error) {
	if s == nil || s.gdb == nil {
		return nil, fmt.Errorf("postgres store is not initialized")
	}

	rows, err := s.gdb.WithContext(ctx).
		Raw(`SELECT id::text, original, translated, created_at FROM translations ORDER BY created_at DESC, id DESC`).
		Rows()
	if err != nil {
		return nil, fmt.Errorf("query translation records: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, 32)
	for rows.Next() {
		var record Record
		if err := rows.Scan(&record.ID, &record.Original, &record.Translated, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan translation record: %w", err)
		}
		// Malformed rows are excluded, never fatal.
		if record.Original == "" || record.Translated == "" {
			continue
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate translation records: %w", err)
	}

	return records, nil
}

func (s *PostgresStore) ClearAll(ctx context.Context) error {
	if s == nil || s.gdb == nil {
		return fmt.Errorf("postgres store is not initialized")
	}

	// Snapshot the visible ids, then delete exactly those in one transaction.
	return s.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := tx.Raw(`SELECT id::text FROM translations`).Rows()
		if err != nil {
			return fmt.Errorf("snapshot translation ids: %w", err)
		}
		defer rows.Close()

		ids := make([]string, 0, 32)
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return fmt.Errorf("scan translation id: %w", err)
			}
			ids = append(ids, id)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate translation ids: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Exec(`DELETE FROM translations WHERE id::text IN ?`, ids).Error; err != nil {
			return fmt.Errorf("delete translation records: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
