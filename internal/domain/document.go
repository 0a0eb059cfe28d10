package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DocumentStatus string

const (
	StatusDraft DocumentStatus = "draft"
	StatusFinal DocumentStatus = "final"
)

// Document is the persisted output of one successful generation.
// TemplateID is a lookup key only; there is no foreign key to templates.
type Document struct {
	ID         string            `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title      string            `gorm:"not null" json:"title"`
	Content    string            `gorm:"type:text;not null" json:"content"`
	TemplateID string            `gorm:"index;type:varchar(36)" json:"template_id"`
	CreatedBy  string            `gorm:"index;type:varchar(36);not null" json:"created_by"`
	Status     DocumentStatus    `gorm:"index;default:'draft'" json:"status"`
	FormValues datatypes.JSONMap `json:"form_values,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// DocumentPatch carries the editor's changes; nil fields are left untouched
type DocumentPatch struct {
	Content   *string
	Status    *DocumentStatus
	UpdatedAt time.Time
}
