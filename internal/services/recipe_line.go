package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Bruce-k901/My-App-sub018/internal/data/repos"
	types "github.com/Bruce-k901/My-App-sub018/internal/domain"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/dbctx"
	errs "github.com/Bruce-k901/My-App-sub018/internal/pkg/errors"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/logger"
)

type LineInput struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	Allergens    []string  `json:"allergens"`
}

// RecipeLineService appends ingredient lines and fires the first-line
// document trigger after every save.
type RecipeLineService interface {
	// SaveLine returns the created line and, when this save was the 0->1
	// transition, the id of the freshly generated procedure document. A
	// non-nil line alongside a non-nil error means the line committed but
	// document generation failed; retrying while the count is still one
	// regenerates it.
	SaveLine(ctx context.Context, recipeID, userID uuid.UUID, in LineInput) (*types.RecipeLine, *uuid.UUID, error)
}

type recipeLineService struct {
	db         *gorm.DB
	log        *logger.Logger
	recipeRepo repos.RecipeRepo
	lineRepo   repos.RecipeLineRepo
	docSvc     ProcedureDocService
}

func NewRecipeLineService(
	db *gorm.DB,
	baseLog *logger.Logger,
	recipeRepo repos.RecipeRepo,
	lineRepo repos.RecipeLineRepo,
	docSvc ProcedureDocService,
) RecipeLineService {
	return &recipeLineService{
		db:         db,
		log:        baseLog.With("service", "RecipeLineService"),
		recipeRepo: recipeRepo,
		lineRepo:   lineRepo,
		docSvc:     docSvc,
	}
}

func (s *recipeLineService) SaveLine(ctx context.Context, recipeID, userID uuid.UUID, in LineInput) (*types.RecipeLine, *uuid.UUID, error) {
	if recipeID == uuid.Nil {
		return nil, nil, fmt.Errorf("%w: missing recipe id", errs.ErrInvalidArgument)
	}
	if in.IngredientID == uuid.Nil {
		return nil, nil, fmt.Errorf("%w: missing ingredient id", errs.ErrInvalidArgument)
	}
	if in.Quantity <= 0 {
		return nil, nil, fmt.Errorf("%w: quantity must be positive", errs.ErrInvalidArgument)
	}

	dbc := dbctx.Context{Ctx: ctx}
	recipe, err := s.recipeRepo.GetByID(dbc, recipeID)
	if err != nil {
		return nil, nil, err
	}
	if !recipe.Status.IsLive() {
		return nil, nil, fmt.Errorf("%w: archived recipes are immutable", errs.ErrInvalidArgument)
	}

	allergens := in.Allergens
	if allergens == nil {
		allergens = []string{}
	}
	allergensJSON, err := json.Marshal(allergens)
	if err != nil {
		return nil, nil, err
	}

	count, err := s.lineRepo.CountByRecipe(dbc, recipeID)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.lineRepo.Create(dbc, []*types.RecipeLine{{
		ID:           uuid.New(),
		RecipeID:     recipeID,
		IngredientID: in.IngredientID,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		Allergens:    datatypes.JSON(allergensJSON),
		Position:     int(count) + 1,
	}})
	if err != nil {
		return nil, nil, err
	}

	docID, err := s.docSvc.GenerateOnFirstLine(ctx, recipeID, recipe.CompanyID, userID)
	if err != nil {
		// The line row is committed and the count is still one, so the
		// failure must reach the caller: swallowing it here would leave the
		// trigger permanently skipped once a second line lands.
		s.log.Error("first-line document generation failed", "error", err, "recipe_id", recipeID)
		return rows[0], nil, fmt.Errorf("line saved but document generation failed: %w", err)
	}
	return rows[0], docID, nil
}
