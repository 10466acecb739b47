package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Bruce-k901/My-App-sub018/internal/data/repos"
	types "github.com/Bruce-k901/My-App-sub018/internal/domain"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/dbctx"
	errs "github.com/Bruce-k901/My-App-sub018/internal/pkg/errors"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/logger"
)

type ResolveAction string

const (
	ResolveActionFound    ResolveAction = "found"
	ResolveActionCreated  ResolveAction = "created"
	ResolveActionDisabled ResolveAction = "disabled"
)

type ResolveResult struct {
	RecipeID   *uuid.UUID    `json:"recipe_id,omitempty"`
	DocumentID *uuid.UUID    `json:"document_id,omitempty"`
	Action     ResolveAction `json:"action"`
}

// PrepLinkService owns the ingredient<->recipe linkage: toggling the
// prep-item flag, idempotent placeholder creation, and the self-healing
// sweep for links left broken by partial failures.
type PrepLinkService interface {
	Resolve(ctx context.Context, ingredientID uuid.UUID, setPrepItem bool, userID uuid.UUID) (*ResolveResult, error)
	CreatePlaceholder(ctx context.Context, ingredientID, companyID, userID uuid.UUID) (uuid.UUID, error)
	ReconcileLinks(ctx context.Context, companyID uuid.UUID) (int, error)
}

type prepLinkService struct {
	db             *gorm.DB
	log            *logger.Logger
	ingredientRepo repos.IngredientRepo
	recipeRepo     repos.RecipeRepo
	codeSvc        RecipeCodeService
}

func NewPrepLinkService(
	db *gorm.DB,
	baseLog *logger.Logger,
	ingredientRepo repos.IngredientRepo,
	recipeRepo repos.RecipeRepo,
	codeSvc RecipeCodeService,
) PrepLinkService {
	return &prepLinkService{
		db:             db,
		log:            baseLog.With("service", "PrepLinkService"),
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
		codeSvc:        codeSvc,
	}
}

func (s *prepLinkService) Resolve(ctx context.Context, ingredientID uuid.UUID, setPrepItem bool, userID uuid.UUID) (*ResolveResult, error) {
	if ingredientID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing ingredient id", errs.ErrInvalidArgument)
	}
	dbc := dbctx.Context{Ctx: ctx}

	ing, err := s.ingredientRepo.GetByID(dbc, ingredientID)
	if err != nil {
		return nil, err
	}

	if !setPrepItem {
		return s.disable(dbc, ing)
	}

	// Re-enabling a previously disabled item: a live recipe may already
	// exist for this output ingredient, possibly with a stale link.
	live, err := s.recipeRepo.GetLiveByOutputIngredient(dbc, ing.CompanyID, ing.ID)
	if err == nil {
		if linkErr := s.ingredientRepo.SetPrepLink(dbc, ing.ID, live.ID); linkErr != nil {
			s.log.Warn("resolve: re-link failed, left for reconciliation", "error", linkErr, "ingredient_id", ing.ID)
		}
		return &ResolveResult{RecipeID: &live.ID, DocumentID: live.LinkedDocumentID, Action: ResolveActionFound}, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	recipeID, err := s.CreatePlaceholder(ctx, ing.ID, ing.CompanyID, userID)
	if err != nil {
		return nil, err
	}
	return &ResolveResult{RecipeID: &recipeID, Action: ResolveActionCreated}, nil
}

// disable deactivates the linked recipe without archiving, deleting, or
// clearing the link, then lowers the prep-item flag.
func (s *prepLinkService) disable(dbc dbctx.Context, ing *types.Ingredient) (*ResolveResult, error) {
	if ing.LinkedRecipeID != nil {
		if err := s.recipeRepo.UpdateFields(dbc, *ing.LinkedRecipeID, map[string]interface{}{
			"is_active": false,
		}); err != nil {
			return nil, err
		}
	}
	if err := s.ingredientRepo.ClearPrepFlag(dbc, ing.ID); err != nil {
		return nil, err
	}
	return &ResolveResult{RecipeID: ing.LinkedRecipeID, Action: ResolveActionDisabled}, nil
}

func (s *prepLinkService) CreatePlaceholder(ctx context.Context, ingredientID, companyID, userID uuid.UUID) (uuid.UUID, error) {
	if ingredientID == uuid.Nil || companyID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: missing id", errs.ErrInvalidArgument)
	}

	var recipeID uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		ing, err := s.ingredientRepo.GetByID(dbc, ingredientID)
		if err != nil {
			return err
		}

		// Step 1: the existing link may still resolve to a live recipe.
		if ing.LinkedRecipeID != nil {
			r, err := s.recipeRepo.GetByID(dbc, *ing.LinkedRecipeID)
			if err == nil && r.Status.IsLive() {
				recipeID = r.ID
				return nil
			}
			if err != nil && !errors.Is(err, errs.ErrNotFound) {
				return err
			}
		}

		// Step 2: a live recipe may exist with a stale or missing link;
		// repair the link instead of creating a duplicate.
		r, err := s.recipeRepo.GetLiveByOutputIngredient(dbc, ing.CompanyID, ing.ID)
		if err == nil {
			recipeID = r.ID
			if linkErr := s.ingredientRepo.SetPrepLink(dbc, ing.ID, r.ID); linkErr != nil {
				s.log.Warn("placeholder: link repair failed, will retry on next call", "error", linkErr, "ingredient_id", ing.ID)
			}
			return nil
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return err
		}

		// Step 3: create the draft placeholder.
		code, err := s.codeSvc.Generate(dbc, ing.Name, ing.CompanyID)
		if err != nil {
			return err
		}
		created, err := s.recipeRepo.Create(dbc, &types.Recipe{
			ID:                 uuid.New(),
			CompanyID:          ing.CompanyID,
			Name:               ing.Name,
			Code:               code,
			RecipeType:         "prep",
			Status:             types.RecipeStatusDraft,
			OutputIngredientID: ing.ID,
			VersionNumber:      1.0,
			IsActive:           false,
			TotalCost:          0,
			YieldUnit:          ing.BaseUnit,
			Allergens:          datatypes.JSON([]byte(`[]`)),
			CreatedBy:          userID,
		})
		if err != nil {
			if errors.Is(err, errs.ErrConflict) {
				// A concurrent caller inserted first; roll back and let
				// the retry below return the winner.
				return err
			}
			return fmt.Errorf("%w: recipe insert failed: %v", errs.ErrStore, err)
		}
		recipeID = created.ID

		// The linking write is best-effort: a committed recipe without a
		// link is repaired by step 2 on a later call.
		if linkErr := s.ingredientRepo.SetPrepLink(dbc, ing.ID, created.ID); linkErr != nil {
			s.log.Warn("placeholder: ingredient link failed after recipe insert, left for reconciliation",
				"error", linkErr, "ingredient_id", ing.ID, "recipe_id", created.ID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			// The unique live-recipe index tripped; the concurrent winner is
			// now visible outside the rolled-back transaction.
			dbc := dbctx.Context{Ctx: ctx}
			if r, lookupErr := s.recipeRepo.GetLiveByOutputIngredient(dbc, companyID, ingredientID); lookupErr == nil {
				if linkErr := s.ingredientRepo.SetPrepLink(dbc, ingredientID, r.ID); linkErr != nil {
					s.log.Warn("placeholder: link repair after conflict failed", "error", linkErr, "ingredient_id", ingredientID)
				}
				return r.ID, nil
			}
		}
		return uuid.Nil, err
	}
	return recipeID, nil
}

// ReconcileLinks repairs prep-item ingredients whose recipe link is missing
// or points at an archived or deleted recipe. Each repair is just a
// CreatePlaceholder call, so the sweep is idempotent.
func (s *prepLinkService) ReconcileLinks(ctx context.Context, companyID uuid.UUID) (int, error) {
	if companyID == uuid.Nil {
		return 0, fmt.Errorf("%w: missing company id", errs.ErrInvalidArgument)
	}
	dbc := dbctx.Context{Ctx: ctx}
	items, err := s.ingredientRepo.ListPrepItems(dbc, companyID)
	if err != nil {
		return 0, err
	}

	var repaired int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	gdbc := dbctx.Context{Ctx: gctx}
	for _, ing := range items {
		if ing.LinkedRecipeID != nil {
			r, err := s.recipeRepo.GetByID(gdbc, *ing.LinkedRecipeID)
			if err == nil && r.Status.IsLive() {
				continue
			}
		}
		ingID := ing.ID
		g.Go(func() error {
			if _, err := s.CreatePlaceholder(gctx, ingID, companyID, uuid.Nil); err != nil {
				// Best-effort sweep; broken entries stay for the next run.
				s.log.Warn("reconcile: placeholder repair failed", "error", err, "ingredient_id", ingID)
				return nil
			}
			atomic.AddInt64(&repaired, 1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(repaired), err
	}
	return int(repaired), nil
}
