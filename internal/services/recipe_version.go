package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Bruce-k901/My-App-sub018/internal/data/repos"
	types "github.com/Bruce-k901/My-App-sub018/internal/domain"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/dbctx"
	errs "github.com/Bruce-k901/My-App-sub018/internal/pkg/errors"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/logger"
)

type ArchiveResult struct {
	LiveID          uuid.UUID `json:"live_id"`
	ArchivedID      uuid.UUID `json:"archived_id"`
	LiveVersion     float64   `json:"live_version"`
	ArchivedVersion float64   `json:"archived_version"`
}

// RecipeVersionService snapshots a recipe (and cascades to its linked
// document) into immutable history before the live row is mutated.
type RecipeVersionService interface {
	ArchiveAndAdvance(ctx context.Context, recipeID, userID uuid.UUID, notes string) (*ArchiveResult, error)
	// SaveActiveRecipe archives the persisted state first, then applies
	// the incoming edits to the live row inside the same transaction, so
	// the snapshot always captures the pre-edit content.
	SaveActiveRecipe(ctx context.Context, recipeID, userID uuid.UUID, updates map[string]interface{}, notes string) (*ArchiveResult, error)
	SetStatus(ctx context.Context, recipeID uuid.UUID, next types.RecipeStatus, userID uuid.UUID) error
}

type recipeVersionService struct {
	db         *gorm.DB
	log        *logger.Logger
	recipeRepo repos.RecipeRepo
	lineRepo   repos.RecipeLineRepo
	docRepo    repos.ProcedureDocumentRepo
	cache      DocumentCacheService
}

func NewRecipeVersionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	recipeRepo repos.RecipeRepo,
	lineRepo repos.RecipeLineRepo,
	docRepo repos.ProcedureDocumentRepo,
	cache DocumentCacheService,
) RecipeVersionService {
	if cache == nil {
		cache = noopDocumentCache{}
	}
	return &recipeVersionService{
		db:         db,
		log:        baseLog.With("service", "RecipeVersionService"),
		recipeRepo: recipeRepo,
		lineRepo:   lineRepo,
		docRepo:    docRepo,
		cache:      cache,
	}
}

// nextVersion advances by exactly 0.1, rounded back to one decimal to keep
// the chain free of float drift.
func nextVersion(v float64) float64 {
	return math.Round(v*10+1) / 10
}

func (s *recipeVersionService) ArchiveAndAdvance(ctx context.Context, recipeID, userID uuid.UUID, notes string) (*ArchiveResult, error) {
	if recipeID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing recipe id", errs.ErrInvalidArgument)
	}

	var (
		res      *ArchiveResult
		cachedID *uuid.UUID
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		live, err := s.recipeRepo.GetByID(dbc, recipeID)
		if err != nil {
			return err
		}
		if !live.Status.IsLive() {
			return fmt.Errorf("%w: recipe %s is an archived snapshot", errs.ErrInvalidArgument, recipeID)
		}

		archivedID, err := s.archiveInTx(dbc, live, userID, notes)
		if err != nil {
			return err
		}
		cachedID = live.LinkedDocumentID
		res = &ArchiveResult{
			LiveID:          live.ID,
			ArchivedID:      archivedID,
			LiveVersion:     nextVersion(live.VersionNumber),
			ArchivedVersion: live.VersionNumber,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if cachedID != nil {
		s.cache.Invalidate(ctx, *cachedID)
	}
	return res, nil
}

func (s *recipeVersionService) SaveActiveRecipe(ctx context.Context, recipeID, userID uuid.UUID, updates map[string]interface{}, notes string) (*ArchiveResult, error) {
	if recipeID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing recipe id", errs.ErrInvalidArgument)
	}
	updates = filterRecipeUpdates(updates)

	var (
		res      *ArchiveResult
		cachedID *uuid.UUID
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		live, err := s.recipeRepo.GetByID(dbc, recipeID)
		if err != nil {
			return err
		}
		if !live.Status.IsLive() {
			return fmt.Errorf("%w: recipe %s is an archived snapshot", errs.ErrInvalidArgument, recipeID)
		}

		res = &ArchiveResult{LiveID: live.ID, LiveVersion: live.VersionNumber}

		// Draft saves carry no history; archival starts once the recipe
		// is active.
		if live.Status == types.RecipeStatusActive {
			archivedID, err := s.archiveInTx(dbc, live, userID, notes)
			if err != nil {
				return err
			}
			cachedID = live.LinkedDocumentID
			res.ArchivedID = archivedID
			res.ArchivedVersion = live.VersionNumber
			res.LiveVersion = nextVersion(live.VersionNumber)
		}

		if len(updates) > 0 {
			if err := s.recipeRepo.UpdateFields(dbc, live.ID, updates); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if cachedID != nil {
		s.cache.Invalidate(ctx, *cachedID)
	}
	return res, nil
}

func (s *recipeVersionService) SetStatus(ctx context.Context, recipeID uuid.UUID, next types.RecipeStatus, userID uuid.UUID) error {
	if recipeID == uuid.Nil {
		return fmt.Errorf("%w: missing recipe id", errs.ErrInvalidArgument)
	}
	if !next.IsValid() {
		return fmt.Errorf("%w: unknown recipe status %q", errs.ErrInvalidArgument, next)
	}

	dbc := dbctx.Context{Ctx: ctx}
	live, err := s.recipeRepo.GetByID(dbc, recipeID)
	if err != nil {
		return err
	}
	if !live.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: cannot transition recipe from %q to %q", errs.ErrInvalidArgument, live.Status, next)
	}
	return s.recipeRepo.UpdateFields(dbc, recipeID, map[string]interface{}{
		"recipe_status": next,
		"is_active":     next == types.RecipeStatusActive,
	})
}

// archiveInTx inserts the archive copy at the current version, copies the
// lines, advances the live version, and cascades to the linked document.
func (s *recipeVersionService) archiveInTx(dbc dbctx.Context, live *types.Recipe, userID uuid.UUID, notes string) (uuid.UUID, error) {
	lines, err := s.lineRepo.ListByRecipe(dbc, live.ID)
	if err != nil {
		return uuid.Nil, err
	}

	now := time.Now().UTC()
	archived := *live
	archived.ID = uuid.New()
	archived.Status = types.RecipeStatusArchived
	archived.IsActive = false
	archived.ArchivedFromRecipeID = &live.ID
	archived.ArchivedAt = &now
	archived.ArchivedBy = archivedBy(userID)
	archived.VersionNumber = live.VersionNumber
	archived.ChangeNotes = notes
	archived.CreatedAt = time.Time{}
	archived.UpdatedAt = time.Time{}

	created, err := s.recipeRepo.Create(dbc, &archived)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: archive insert failed: %v", errs.ErrStore, err)
	}

	// Frozen, independent copies; the live recipe keeps its own rows.
	copies := make([]*types.RecipeLine, 0, len(lines))
	for _, line := range lines {
		copies = append(copies, &types.RecipeLine{
			ID:           uuid.New(),
			RecipeID:     created.ID,
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
			Allergens:    line.Allergens,
			Position:     line.Position,
		})
	}
	if _, err := s.lineRepo.Create(dbc, copies); err != nil {
		return uuid.Nil, fmt.Errorf("%w: archive line copy failed: %v", errs.ErrStore, err)
	}

	if err := s.recipeRepo.UpdateFields(dbc, live.ID, map[string]interface{}{
		"version_number": nextVersion(live.VersionNumber),
	}); err != nil {
		return uuid.Nil, err
	}

	if live.LinkedDocumentID != nil {
		if err := s.archiveDocumentInTx(dbc, *live.LinkedDocumentID, userID, now); err != nil {
			return uuid.Nil, err
		}
	}
	return created.ID, nil
}

// archiveDocumentInTx duplicates the whole document row as the snapshot
// unit; content is a single structured blob, not relational children.
func (s *recipeVersionService) archiveDocumentInTx(dbc dbctx.Context, documentID uuid.UUID, userID uuid.UUID, now time.Time) error {
	doc, err := s.docRepo.GetByID(dbc, documentID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.log.Warn("cascade archive: linked document missing, skipping", "document_id", documentID)
			return nil
		}
		return err
	}

	archived := *doc
	archived.ID = uuid.New()
	archived.Status = types.DocumentStatusArchived
	archived.ArchivedFromDocumentID = &doc.ID
	archived.ArchivedAt = &now
	archived.ArchivedBy = archivedBy(userID)
	archived.VersionNumber = doc.VersionNumber
	archived.CreatedAt = time.Time{}
	archived.UpdatedAt = time.Time{}

	if _, err := s.docRepo.Create(dbc, &archived); err != nil {
		return fmt.Errorf("%w: document archive insert failed: %v", errs.ErrStore, err)
	}
	return s.docRepo.UpdateFields(dbc, doc.ID, map[string]interface{}{
		"version_number": nextVersion(doc.VersionNumber),
	})
}

func archivedBy(userID uuid.UUID) *uuid.UUID {
	if userID == uuid.Nil {
		return nil
	}
	return &userID
}

// filterRecipeUpdates keeps edits to content fields only; identity, status,
// version, and archival bookkeeping are owned by this service.
func filterRecipeUpdates(updates map[string]interface{}) map[string]interface{} {
	allowed := map[string]struct{}{
		"name":                 {},
		"recipe_type":          {},
		"total_cost":           {},
		"yield_qty":            {},
		"yield_unit":           {},
		"allergens":            {},
		"storage_instructions": {},
		"shelf_life_days":      {},
		"change_notes":         {},
	}
	out := map[string]interface{}{}
	for k, v := range updates {
		if _, ok := allowed[k]; ok {
			out[k] = v
		}
	}
	return out
}
