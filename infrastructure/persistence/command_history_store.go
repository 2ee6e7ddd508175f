package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/helixml/molsync/domain/structure"
	"github.com/helixml/molsync/internal/database"
)

// CommandHistoryStore implements structure.HistoryStore using GORM.
type CommandHistoryStore struct {
	db     database.Database
	mapper CommandHistoryMapper
}

// NewCommandHistoryStore creates a new CommandHistoryStore.
func NewCommandHistoryStore(db database.Database) CommandHistoryStore {
	return CommandHistoryStore{db: db}
}

// Find returns the history of viewer, or structure.ErrHistoryNotFound.
func (s CommandHistoryStore) Find(ctx context.Context, viewer string) (structure.History, error) {
	var model CommandHistoryModel
	err := s.db.Session(ctx).Where("viewer = ?", viewer).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return structure.History{}, fmt.Errorf("%w: %s", structure.ErrHistoryNotFound, viewer)
	}
	if err != nil {
		return structure.History{}, fmt.Errorf("find command history: %w", err)
	}
	return s.mapper.ToDomain(model)
}

// Save creates or replaces the history of the viewer session.
func (s CommandHistoryStore) Save(ctx context.Context, h structure.History) (structure.History, error) {
	model := s.mapper.ToModel(h)

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var existing CommandHistoryModel
		err := tx.Where("viewer = ?", model.Viewer).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			model.ID = 0
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("create command history: %w", err)
			}
		case err != nil:
			return fmt.Errorf("find command history: %w", err)
		default:
			model.ID = existing.ID
			model.CreatedAt = existing.CreatedAt
			if err := tx.Save(&model).Error; err != nil {
				return fmt.Errorf("update command history: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return structure.History{}, err
	}
	return s.mapper.ToDomain(model)
}

// Delete removes the history of viewer. Deleting an absent history is not
// an error.
func (s CommandHistoryStore) Delete(ctx context.Context, viewer string) error {
	result := s.db.Session(ctx).Where("viewer = ?", viewer).Delete(&CommandHistoryModel{})
	if result.Error != nil {
		return fmt.Errorf("delete command history: %w", result.Error)
	}
	return nil
}

// Count returns the number of viewer sessions with recorded history.
func (s CommandHistoryStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.Session(ctx).Model(&CommandHistoryModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count command histories: %w", err)
	}
	return n, nil
}
