package recipes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Recipe struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`

	Name       string       `gorm:"not null;column:name" json:"name"`
	Code       string       `gorm:"column:code;index" json:"code"`
	RecipeType string       `gorm:"column:recipe_type" json:"recipe_type"`
	Status     RecipeStatus `gorm:"column:recipe_status;type:varchar(16);not null;index" json:"recipe_status"`

	OutputIngredientID uuid.UUID `gorm:"type:uuid;column:output_ingredient_id;not null;index" json:"output_ingredient_id"`

	// VersionNumber advances in exact 0.1 steps; archive rows carry the
	// pre-increment value.
	VersionNumber float64 `gorm:"column:version_number;type:numeric(5,1);not null" json:"version_number"`
	IsActive      bool    `gorm:"column:is_active;not null" json:"is_active"`

	ArchivedFromRecipeID *uuid.UUID `gorm:"type:uuid;column:archived_from_recipe_id;index" json:"archived_from_recipe_id,omitempty"`
	ArchivedAt           *time.Time `gorm:"column:archived_at" json:"archived_at,omitempty"`
	ArchivedBy           *uuid.UUID `gorm:"type:uuid;column:archived_by" json:"archived_by,omitempty"`

	LinkedDocumentID *uuid.UUID `gorm:"type:uuid;column:linked_document_id" json:"linked_document_id,omitempty"`

	TotalCost float64 `gorm:"column:total_cost;not null" json:"total_cost"`
	YieldQty  float64 `gorm:"column:yield_qty" json:"yield_qty"`
	YieldUnit string  `gorm:"column:yield_unit" json:"yield_unit"`

	Allergens           datatypes.JSON `gorm:"type:jsonb;column:allergens" json:"allergens,omitempty"`
	StorageInstructions string         `gorm:"column:storage_instructions" json:"storage_instructions"`
	ShelfLifeDays       int            `gorm:"column:shelf_life_days" json:"shelf_life_days"`
	ChangeNotes         string         `gorm:"column:change_notes" json:"change_notes"`

	CreatedBy uuid.UUID      `gorm:"type:uuid;column:created_by" json:"created_by"`
	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Recipe) TableName() string { return "recipe" }
