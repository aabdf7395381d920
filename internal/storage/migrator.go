package storage

import (
	"context"
	"encoding/json"

	"github.com/nanatgrail/prodigyspace/internal/logging"
)

// Migrator upgrades payloads written under another envelope version.
// Returning an error makes the read fail as if the value were corrupt.
type Migrator interface {
	Migrate(ctx context.Context, key, from string, data json.RawMessage) (json.RawMessage, error)
}

// WarnMigrator accepts data of any version unchanged and logs a warning.
type WarnMigrator struct {
	Log     logging.Logger
	Current string
}

func (m WarnMigrator) Migrate(ctx context.Context, key, from string, data json.RawMessage) (json.RawMessage, error) {
	if m.Log != nil {
		m.Log.Warn(ctx, "storage version mismatch", "key", key, "expected", m.Current, "found", from)
	}
	return data, nil
}
