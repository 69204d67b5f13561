package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ExtractedPalette is one successful color extraction.
type ExtractedPalette struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Type      string         `gorm:"size:16;not null;index" json:"type"`
	Source    string         `gorm:"size:16;not null" json:"source"`
	Model     string         `gorm:"size:128" json:"model,omitempty"`
	Colors    datatypes.JSON `json:"colors"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

// BeforeCreate sets UUID if not already set
func (p *ExtractedPalette) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// GetAllModels lists the models managed by migrations.
func GetAllModels() []interface{} {
	return []interface{}{
		&ExtractedPalette{},
	}
}
