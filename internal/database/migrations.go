package database

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/rmitchellscott/orangesnap/internal/logging"
)

// RunMigrations applies pending schema migrations.
func RunMigrations(db *gorm.DB) error {
	logging.DebugWithComponent(logging.ComponentDatabase, "Running database migrations")

	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "202510190000_create_extracted_palettes",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&ExtractedPalette{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("extracted_palettes")
			},
		},
	})

	if err := m.Migrate(); err != nil {
		return err
	}

	logging.DebugWithComponent(logging.ComponentDatabase, "Database migrations completed")
	return nil
}
