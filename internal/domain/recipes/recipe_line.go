package recipes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecipeLine rows are copied verbatim to the archive copy on archival; the
// live recipe keeps its own rows untouched.
type RecipeLine struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`

	IngredientID uuid.UUID      `gorm:"type:uuid;column:ingredient_id;not null;index" json:"ingredient_id"`
	Quantity     float64        `gorm:"column:quantity;not null" json:"quantity"`
	Unit         string         `gorm:"column:unit" json:"unit"`
	Allergens    datatypes.JSON `gorm:"type:jsonb;column:allergens" json:"allergens,omitempty"`
	Position     int            `gorm:"column:position;not null" json:"position"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (RecipeLine) TableName() string { return "recipe_line" }
