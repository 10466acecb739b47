package docs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DocumentStatus string

const (
	DocumentStatusDraft    DocumentStatus = "Draft"
	DocumentStatusArchived DocumentStatus = "Archived"
)

func (s DocumentStatus) IsValid() bool {
	return s == DocumentStatusDraft || s == DocumentStatusArchived
}

// ProcedureDocument is the structured operating procedure derived from a
// recipe. Content and PrintMetadata are single JSON blobs, so the whole row
// is the snapshot unit during cascade archival.
type ProcedureDocument struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`

	Title    string         `gorm:"not null;column:title" json:"title"`
	Code     string         `gorm:"column:code;index" json:"code"`
	Status   DocumentStatus `gorm:"column:status;type:varchar(16);not null;index" json:"status"`
	Category string         `gorm:"column:category" json:"category"`

	VersionNumber float64 `gorm:"column:version_number;type:numeric(5,1);not null" json:"version_number"`

	LinkedRecipeID         *uuid.UUID `gorm:"type:uuid;column:linked_recipe_id;index" json:"linked_recipe_id,omitempty"`
	ArchivedFromDocumentID *uuid.UUID `gorm:"type:uuid;column:archived_from_document_id;index" json:"archived_from_document_id,omitempty"`
	ArchivedAt             *time.Time `gorm:"column:archived_at" json:"archived_at,omitempty"`
	ArchivedBy             *uuid.UUID `gorm:"type:uuid;column:archived_by" json:"archived_by,omitempty"`

	Content       datatypes.JSON `gorm:"type:jsonb;column:content" json:"content,omitempty"`
	PrintMetadata datatypes.JSON `gorm:"type:jsonb;column:print_metadata" json:"print_metadata,omitempty"`

	NeedsUpdate            bool       `gorm:"column:needs_update;not null" json:"needs_update"`
	LastSyncedWithRecipeAt *time.Time `gorm:"column:last_synced_with_recipe_at" json:"last_synced_with_recipe_at,omitempty"`

	CreatedBy uuid.UUID      `gorm:"type:uuid;column:created_by" json:"created_by"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ProcedureDocument) TableName() string { return "procedure_document" }
