package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrPaletteNotFound is returned when no palette has the requested ID.
var ErrPaletteNotFound = errors.New("palette not found")

const (
	defaultListLimit = 20
	maxListLimit     = 200
)

// PaletteService handles database operations for extracted palettes
type PaletteService struct {
	db *gorm.DB
}

// NewPaletteService creates a new palette service
func NewPaletteService(db *gorm.DB) *PaletteService {
	return &PaletteService{db: db}
}

// Record stores one extraction. colors is marshalled as JSON.
func (s *PaletteService) Record(ctx context.Context, kind, source, model string, colors any) error {
	_, err := s.Save(ctx, kind, source, model, colors)
	return err
}

// Save stores one extraction and returns the created row.
func (s *PaletteService) Save(ctx context.Context, kind, source, model string, colors any) (*ExtractedPalette, error) {
	raw, err := json.Marshal(colors)
	if err != nil {
		return nil, fmt.Errorf("failed to encode colors: %w", err)
	}

	p := &ExtractedPalette{
		Type:   kind,
		Source: source,
		Model:  model,
		Colors: datatypes.JSON(raw),
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to save palette: %w", err)
	}
	return p, nil
}

// ListRecent returns the newest palettes first. limit is clamped to 1..200
// and defaults to 20 when non-positive.
func (s *PaletteService) ListRecent(ctx context.Context, limit int) ([]ExtractedPalette, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)

	var out []ExtractedPalette
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list palettes: %w", err)
	}
	return out, nil
}

// Get returns one palette by ID.
func (s *PaletteService) Get(ctx context.Context, id uuid.UUID) (*ExtractedPalette, error) {
	var p ExtractedPalette
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaletteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load palette: %w", err)
	}
	return &p, nil
}
