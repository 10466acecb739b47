package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Bruce-k901/My-App-sub018/internal/domain"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/dbctx"
	errs "github.com/Bruce-k901/My-App-sub018/internal/pkg/errors"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/logger"
)

type IngredientRepo interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Ingredient, error)
	// SetPrepLink points the ingredient at its producing recipe and raises
	// the prep-item flag in one write.
	SetPrepLink(dbc dbctx.Context, id uuid.UUID, recipeID uuid.UUID) error
	// ClearPrepFlag lowers the prep-item flag but leaves the recipe link in
	// place so re-enabling can find it again.
	ClearPrepFlag(dbc dbctx.Context, id uuid.UUID) error
	ListPrepItems(dbc dbctx.Context, companyID uuid.UUID) ([]*types.Ingredient, error)
}

type ingredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientRepo(db *gorm.DB, log *logger.Logger) IngredientRepo {
	return &ingredientRepo{db: db, log: log.With("repo", "IngredientRepo")}
}

func (r *ingredientRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Ingredient, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: missing ingredient id", errs.ErrInvalidArgument)
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out types.Ingredient
	if err := txx.WithContext(dbc.Ctx).First(&out, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ingredient %s", errs.ErrNotFound, id)
		}
		return nil, err
	}
	return &out, nil
}

func (r *ingredientRepo) SetPrepLink(dbc dbctx.Context, id uuid.UUID, recipeID uuid.UUID) error {
	if id == uuid.Nil || recipeID == uuid.Nil {
		return fmt.Errorf("%w: missing id", errs.ErrInvalidArgument)
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Model(&types.Ingredient{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"linked_recipe_id": recipeID,
			"is_prep_item":     true,
			"updated_at":       time.Now().UTC(),
		}).Error
}

func (r *ingredientRepo) ClearPrepFlag(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: missing id", errs.ErrInvalidArgument)
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Model(&types.Ingredient{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_prep_item": false,
			"updated_at":   time.Now().UTC(),
		}).Error
}

func (r *ingredientRepo) ListPrepItems(dbc dbctx.Context, companyID uuid.UUID) ([]*types.Ingredient, error) {
	if companyID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing company id", errs.ErrInvalidArgument)
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Ingredient
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.Ingredient{}).
		Where("company_id = ? AND is_prep_item = ?", companyID, true).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
