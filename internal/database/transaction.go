package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// WithTransaction runs fn in a transaction, committing when fn returns nil
// and rolling back otherwise.
func WithTransaction(ctx context.Context, db Database, fn func(tx *gorm.DB) error) error {
	tx := db.Session(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback().Error
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}
