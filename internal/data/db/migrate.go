package db

import (
	"gorm.io/gorm"

	types "github.com/Bruce-k901/My-App-sub018/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity (read-only here)
		&types.User{},

		// Catalog
		&types.Ingredient{},

		// Recipes + version history
		&types.Recipe{},
		&types.RecipeLine{},

		// Derived procedure documents
		&types.ProcedureDocument{},
	)
}

// EnsureLiveRecipeIndex enforces at most one non-archived recipe per
// (company, output ingredient). Partial unique indexes are supported by both
// Postgres and the SQLite test database.
func EnsureLiveRecipeIndex(db *gorm.DB) error {
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_live_recipe_per_output
		ON recipe (company_id, output_ingredient_id)
		WHERE recipe_status <> 'archived' AND deleted_at IS NULL;
	`).Error
}
