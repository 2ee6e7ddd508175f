package persistence

import "time"

// CommandHistoryModel is the last command set sent to a viewer session.
// Files and Commands hold JSON string arrays.
type CommandHistoryModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Viewer    string    `gorm:"column:viewer;uniqueIndex;size:255;not null"`
	Digest    string    `gorm:"column:digest;size:64"`
	Files     string    `gorm:"column:files;type:text"`
	Commands  string    `gorm:"column:commands;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (CommandHistoryModel) TableName() string {
	return "command_histories"
}
