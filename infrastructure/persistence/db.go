// Package persistence provides database storage implementations.
package persistence

import (
	"context"

	"github.com/helixml/molsync/internal/database"
)

// AutoMigrate creates or updates the tables used by the stores.
func AutoMigrate(ctx context.Context, db database.Database) error {
	return db.Session(ctx).AutoMigrate(&CommandHistoryModel{})
}
