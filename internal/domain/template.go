package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category selects the input fields a template asks for. Values outside the
// known set are stored as-is and simply derive no fields.
type Category string

const (
	CategoryNDA      Category = "nda"
	CategoryRental   Category = "rental"
	CategoryWill     Category = "will"
	CategoryBusiness Category = "business"
)

// Template is a reusable document skeleton. Content is the body text handed
// verbatim to the generation provider.
type Template struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Category    Category  `gorm:"index;not null" json:"category"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsPublic    bool      `gorm:"index" json:"is_public"`
	CreatedBy   string    `gorm:"index;type:varchar(36)" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Template) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// VisibleTo reports whether userID may read and use the template
func (t *Template) VisibleTo(userID string) bool {
	return t.IsPublic || t.CreatedBy == userID
}

type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldDate     FieldKind = "date"
	FieldEmail    FieldKind = "email"
)

// FieldDefinition describes one form input; derived from the template category, never stored.
type FieldDefinition struct {
	ID          string    `json:"id" yaml:"id"`
	Label       string    `json:"label" yaml:"label"`
	Kind        FieldKind `json:"type" yaml:"type"`
	Placeholder string    `json:"placeholder" yaml:"placeholder"`
	Required    bool      `json:"required" yaml:"required"`
}

// FormValues maps field id to the user's input
type FormValues map[string]string
