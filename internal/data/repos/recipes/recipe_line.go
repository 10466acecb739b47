package recipes

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Bruce-k901/My-App-sub018/internal/domain"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/dbctx"
	errs "github.com/Bruce-k901/My-App-sub018/internal/pkg/errors"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/logger"
)

type RecipeLineRepo interface {
	Create(dbc dbctx.Context, rows []*types.RecipeLine) ([]*types.RecipeLine, error)
	ListByRecipe(dbc dbctx.Context, recipeID uuid.UUID) ([]*types.RecipeLine, error)
	CountByRecipe(dbc dbctx.Context, recipeID uuid.UUID) (int64, error)
}

type recipeLineRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeLineRepo(db *gorm.DB, log *logger.Logger) RecipeLineRepo {
	return &recipeLineRepo{db: db, log: log.With("repo", "RecipeLineRepo")}
}

func (r *recipeLineRepo) Create(dbc dbctx.Context, rows []*types.RecipeLine) ([]*types.RecipeLine, error) {
	if len(rows) == 0 {
		return []*types.RecipeLine{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if err := txx.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *recipeLineRepo) ListByRecipe(dbc dbctx.Context, recipeID uuid.UUID) ([]*types.RecipeLine, error) {
	if recipeID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing recipe id", errs.ErrInvalidArgument)
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.RecipeLine
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.RecipeLine{}).
		Where("recipe_id = ?", recipeID).
		Order("position ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recipeLineRepo) CountByRecipe(dbc dbctx.Context, recipeID uuid.UUID) (int64, error) {
	if recipeID == uuid.Nil {
		return 0, fmt.Errorf("%w: missing recipe id", errs.ErrInvalidArgument)
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var n int64
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.RecipeLine{}).
		Where("recipe_id = ?", recipeID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
