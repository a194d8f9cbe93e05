package orm

import (
	"time"

	"gorm.io/gorm"
)

// Model is the base for records that use the default scopes: creation time
// lives in created_at.
type Model struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// ActiveModel adds the is_active flag the default active and inactive checks
// filter on. The zero value is inactive.
type ActiveModel struct {
	Model
	IsActive int `gorm:"not null;index"`
}

// Activate marks the record active.
func (m *ActiveModel) Activate() { m.IsActive = 1 }

// Deactivate marks the record inactive.
func (m *ActiveModel) Deactivate() { m.IsActive = 0 }
