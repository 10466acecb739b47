package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Bruce-k901/My-App-sub018/internal/data/repos"
	types "github.com/Bruce-k901/My-App-sub018/internal/domain"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/dbctx"
	errs "github.com/Bruce-k901/My-App-sub018/internal/pkg/errors"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/logger"
)

const (
	documentCategory = "Food Prep"
	documentType     = "Prep"
	fallbackAuthor   = "System"
)

// PrintPayload is the read shape served to print/export consumers; content
// and metadata are guaranteed to exist and be mutually consistent once a
// document has been created.
type PrintPayload struct {
	DocumentID uuid.UUID       `json:"document_id"`
	Title      string          `json:"title"`
	Status     string          `json:"status"`
	Version    float64         `json:"version"`
	Content    json.RawMessage `json:"content"`
	Metadata   json.RawMessage `json:"metadata"`
}

// ProcedureDocService derives the structured procedure document from a
// recipe snapshot at the 0->1 line transition.
type ProcedureDocService interface {
	// GenerateOnFirstLine returns the new document id, or nil when the
	// trigger is skipped (line count other than one, or already generated).
	GenerateOnFirstLine(ctx context.Context, recipeID, companyID, userID uuid.UUID) (*uuid.UUID, error)
	GetPrintPayload(ctx context.Context, documentID uuid.UUID) (*PrintPayload, error)
}

type procedureDocService struct {
	db             *gorm.DB
	log            *logger.Logger
	recipeRepo     repos.RecipeRepo
	lineRepo       repos.RecipeLineRepo
	ingredientRepo repos.IngredientRepo
	userRepo       repos.UserRepo
	docRepo        repos.ProcedureDocumentRepo
	cache          DocumentCacheService
}

func NewProcedureDocService(
	db *gorm.DB,
	baseLog *logger.Logger,
	recipeRepo repos.RecipeRepo,
	lineRepo repos.RecipeLineRepo,
	ingredientRepo repos.IngredientRepo,
	userRepo repos.UserRepo,
	docRepo repos.ProcedureDocumentRepo,
	cache DocumentCacheService,
) ProcedureDocService {
	if cache == nil {
		cache = noopDocumentCache{}
	}
	return &procedureDocService{
		db:             db,
		log:            baseLog.With("service", "ProcedureDocService"),
		recipeRepo:     recipeRepo,
		lineRepo:       lineRepo,
		ingredientRepo: ingredientRepo,
		userRepo:       userRepo,
		docRepo:        docRepo,
		cache:          cache,
	}
}

func (s *procedureDocService) GenerateOnFirstLine(ctx context.Context, recipeID, companyID, userID uuid.UUID) (*uuid.UUID, error) {
	if recipeID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing recipe id", errs.ErrInvalidArgument)
	}

	count, err := s.lineRepo.CountByRecipe(dbctx.Context{Ctx: ctx}, recipeID)
	if err != nil {
		return nil, err
	}
	if count != 1 {
		return nil, nil
	}

	var docID uuid.UUID
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		recipe, err := s.recipeRepo.GetByID(dbc, recipeID)
		if err != nil {
			return err
		}
		if recipe.LinkedDocumentID != nil {
			// A concurrent trigger already generated it.
			docID = *recipe.LinkedDocumentID
			return nil
		}

		lines, err := s.lineRepo.ListByRecipe(dbc, recipeID)
		if err != nil {
			return err
		}

		author := s.authorName(dbc, userID)
		table := s.buildIngredientTable(dbc, lines)
		union := allergenUnion(recipe.Allergens, lines)

		content := types.DocumentContent{
			Header: types.DocumentHeader{
				Title:   recipe.Name,
				Code:    recipe.Code,
				Version: recipe.VersionNumber,
				Status:  string(types.DocumentStatusDraft),
				Author:  author,
				Type:    documentType,
				Yield:   formatYield(recipe.YieldQty, recipe.YieldUnit),
			},
			SafetyNotes: safetyNotes(union),
			Ingredients: table,
			Storage: types.StorageInfo{
				Instructions:  recipe.StorageInstructions,
				ShelfLifeDays: recipe.ShelfLifeDays,
			},
			Allergens: union,
		}
		metadata := types.PrintMetadata{
			RecipeSummary:  fmt.Sprintf("%s (%s), version %.1f", recipe.Name, recipe.Code, recipe.VersionNumber),
			IngredientList: ingredientSummaryList(table),
			Equipment:      []string{},
			Method:         []string{},
		}

		contentJSON, err := json.Marshal(content)
		if err != nil {
			return err
		}
		metadataJSON, err := json.Marshal(metadata)
		if err != nil {
			return err
		}

		created, err := s.docRepo.Create(dbc, &types.ProcedureDocument{
			ID:             uuid.New(),
			CompanyID:      recipe.CompanyID,
			Title:          recipe.Name,
			Code:           recipe.Code,
			Status:         types.DocumentStatusDraft,
			Category:       documentCategory,
			VersionNumber:  recipe.VersionNumber,
			LinkedRecipeID: &recipe.ID,
			Content:        datatypes.JSON(contentJSON),
			PrintMetadata:  datatypes.JSON(metadataJSON),
			NeedsUpdate:    false,
			CreatedBy:      userID,
		})
		if err != nil {
			return fmt.Errorf("%w: document insert failed: %v", errs.ErrStore, err)
		}

		// The document row exists before the recipe references it, so no
		// recipe ever points at a non-existent document.
		if err := s.recipeRepo.UpdateFields(dbc, recipe.ID, map[string]interface{}{
			"linked_document_id": created.ID,
			"recipe_status":      types.RecipeStatusActive,
			"is_active":          true,
		}); err != nil {
			return err
		}
		docID = created.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Sync stamping is best-effort and never unwinds the committed write.
	now := time.Now().UTC()
	if err := s.docRepo.UpdateFields(dbctx.Context{Ctx: ctx}, docID, map[string]interface{}{
		"needs_update":               false,
		"last_synced_with_recipe_at": now,
	}); err != nil {
		s.log.Warn("sync stamp failed, document stays consistent on next save", "error", err, "document_id", docID)
	}
	s.cache.Invalidate(ctx, docID)

	return &docID, nil
}

func (s *procedureDocService) GetPrintPayload(ctx context.Context, documentID uuid.UUID) (*PrintPayload, error) {
	if documentID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing document id", errs.ErrInvalidArgument)
	}
	if payload, ok := s.cache.Get(ctx, documentID); ok {
		return payload, nil
	}
	doc, err := s.docRepo.GetByID(dbctx.Context{Ctx: ctx}, documentID)
	if err != nil {
		return nil, err
	}
	payload := &PrintPayload{
		DocumentID: doc.ID,
		Title:      doc.Title,
		Status:     string(doc.Status),
		Version:    doc.VersionNumber,
		Content:    json.RawMessage(doc.Content),
		Metadata:   json.RawMessage(doc.PrintMetadata),
	}
	s.cache.Put(ctx, documentID, payload)
	return payload, nil
}

// authorName resolves the acting user's display name: full name, then
// email, then "System".
func (s *procedureDocService) authorName(dbc dbctx.Context, userID uuid.UUID) string {
	if userID == uuid.Nil {
		return fallbackAuthor
	}
	u, err := s.userRepo.GetByID(dbc, userID)
	if err != nil {
		return fallbackAuthor
	}
	if name := u.FullName(); name != "" {
		return name
	}
	if email := strings.TrimSpace(u.Email); email != "" {
		return email
	}
	return fallbackAuthor
}

func (s *procedureDocService) buildIngredientTable(dbc dbctx.Context, lines []*types.RecipeLine) []types.IngredientRow {
	rows := make([]types.IngredientRow, 0, len(lines))
	for _, line := range lines {
		row := types.IngredientRow{
			Quantity:  line.Quantity,
			Unit:      line.Unit,
			Allergens: decodeStringList(line.Allergens),
		}
		ing, err := s.ingredientRepo.GetByID(dbc, line.IngredientID)
		if err != nil {
			s.log.Warn("ingredient lookup failed for table row", "error", err, "ingredient_id", line.IngredientID)
			row.Name = "Unknown ingredient"
		} else {
			row.Name = ing.Name
			row.Supplier = ing.SupplierName
		}
		rows = append(rows, row)
	}
	return rows
}

// allergenUnion is the deduplicated union of the recipe-level allergens and
// every line's allergens, sorted for stable output.
func allergenUnion(recipeAllergens datatypes.JSON, lines []*types.RecipeLine) []string {
	seen := map[string]struct{}{}
	add := func(values []string) {
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			seen[v] = struct{}{}
		}
	}
	add(decodeStringList(recipeAllergens))
	for _, line := range lines {
		add(decodeStringList(line.Allergens))
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func safetyNotes(allergens []string) []string {
	notes := []string{}
	if len(allergens) > 0 {
		notes = append(notes, fmt.Sprintf("ALLERGEN WARNING: contains %s.", strings.Join(allergens, ", ")))
	}
	notes = append(notes, "Follow standard food safety practice during preparation.")
	return notes
}

func ingredientSummaryList(rows []types.IngredientRow) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, strings.TrimSpace(fmt.Sprintf("%s %g %s", row.Name, row.Quantity, row.Unit)))
	}
	return out
}

func formatYield(qty float64, unit string) string {
	if qty == 0 && strings.TrimSpace(unit) == "" {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%g %s", qty, unit))
}
