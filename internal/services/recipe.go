package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Bruce-k901/My-App-sub018/internal/data/repos"
	types "github.com/Bruce-k901/My-App-sub018/internal/domain"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/dbctx"
	errs "github.com/Bruce-k901/My-App-sub018/internal/pkg/errors"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/logger"
)

type RecipeService interface {
	Get(ctx context.Context, recipeID uuid.UUID) (*types.Recipe, []*types.RecipeLine, error)
}

type recipeService struct {
	db         *gorm.DB
	log        *logger.Logger
	recipeRepo repos.RecipeRepo
	lineRepo   repos.RecipeLineRepo
}

func NewRecipeService(db *gorm.DB, baseLog *logger.Logger, recipeRepo repos.RecipeRepo, lineRepo repos.RecipeLineRepo) RecipeService {
	return &recipeService{
		db:         db,
		log:        baseLog.With("service", "RecipeService"),
		recipeRepo: recipeRepo,
		lineRepo:   lineRepo,
	}
}

func (s *recipeService) Get(ctx context.Context, recipeID uuid.UUID) (*types.Recipe, []*types.RecipeLine, error) {
	if recipeID == uuid.Nil {
		return nil, nil, fmt.Errorf("%w: missing recipe id", errs.ErrInvalidArgument)
	}
	dbc := dbctx.Context{Ctx: ctx}
	recipe, err := s.recipeRepo.GetByID(dbc, recipeID)
	if err != nil {
		return nil, nil, err
	}
	lines, err := s.lineRepo.ListByRecipe(dbc, recipeID)
	if err != nil {
		return nil, nil, err
	}
	return recipe, lines, nil
}
