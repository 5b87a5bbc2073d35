package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexbrit/traduko/internal/config"
)

// NewStore creates the configured history store backend.
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	switch strings.ToLower(strings.TrimSpace(cfg.StoreDriver)) {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.SQLitePath)
	case "postgres":
		return NewPostgresStore(ctx, cfg.DatabaseURL, int(cfg.DBMaxConns))
	case "firestore":
		return NewFirestoreStore(ctx, cfg.FirestoreProjectID)
	default:
		return nil, fmt.Errorf("unknown store driver: %q", cfg.StoreDriver)
	}
}
