package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient rows are created and edited by the catalog module. The prep
// linkage resolver is the only writer of IsPrepItem and LinkedRecipeID here.
type Ingredient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`

	Name         string `gorm:"not null;column:name" json:"name"`
	BaseUnit     string `gorm:"column:base_unit" json:"base_unit"`
	SupplierName string `gorm:"column:supplier_name" json:"supplier_name"`

	IsPrepItem     bool       `gorm:"column:is_prep_item;not null;index" json:"is_prep_item"`
	LinkedRecipeID *uuid.UUID `gorm:"type:uuid;column:linked_recipe_id;index" json:"linked_recipe_id,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Ingredient) TableName() string { return "ingredient" }
