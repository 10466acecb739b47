package recipes

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	types "github.com/Bruce-k901/My-App-sub018/internal/domain"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/dbctx"
	errs "github.com/Bruce-k901/My-App-sub018/internal/pkg/errors"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/logger"
)

type RecipeRepo interface {
	Create(dbc dbctx.Context, row *types.Recipe) (*types.Recipe, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Recipe, error)
	// GetLiveByOutputIngredient finds the single draft-or-active recipe for
	// an output ingredient, ErrNotFound when none exists.
	GetLiveByOutputIngredient(dbc dbctx.Context, companyID, outputIngredientID uuid.UUID) (*types.Recipe, error)
	ListCodesByPrefix(dbc dbctx.Context, companyID uuid.UUID, codePrefix string) ([]string, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, log *logger.Logger) RecipeRepo {
	return &recipeRepo{db: db, log: log.With("repo", "RecipeRepo")}
}

func (r *recipeRepo) Create(dbc dbctx.Context, row *types.Recipe) (*types.Recipe, error) {
	if row == nil {
		return nil, fmt.Errorf("%w: missing recipe", errs.ErrInvalidArgument)
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if err := txx.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		if IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: live recipe already exists for output ingredient %s", errs.ErrConflict, row.OutputIngredientID)
		}
		return nil, err
	}
	return row, nil
}

func (r *recipeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Recipe, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: missing recipe id", errs.ErrInvalidArgument)
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out types.Recipe
	if err := txx.WithContext(dbc.Ctx).First(&out, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %s", errs.ErrNotFound, id)
		}
		return nil, err
	}
	return &out, nil
}

func (r *recipeRepo) GetLiveByOutputIngredient(dbc dbctx.Context, companyID, outputIngredientID uuid.UUID) (*types.Recipe, error) {
	if companyID == uuid.Nil || outputIngredientID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing id", errs.ErrInvalidArgument)
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out types.Recipe
	err := txx.WithContext(dbc.Ctx).
		Where("company_id = ? AND output_ingredient_id = ? AND recipe_status IN ?",
			companyID, outputIngredientID,
			[]types.RecipeStatus{types.RecipeStatusDraft, types.RecipeStatusActive}).
		First(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no live recipe for ingredient %s", errs.ErrNotFound, outputIngredientID)
		}
		return nil, err
	}
	return &out, nil
}

func (r *recipeRepo) ListCodesByPrefix(dbc dbctx.Context, companyID uuid.UUID, codePrefix string) ([]string, error) {
	if companyID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing company id", errs.ErrInvalidArgument)
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var codes []string
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.Recipe{}).
		Where("company_id = ? AND code LIKE ?", companyID, codePrefix+"%").
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *recipeRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: missing recipe id", errs.ErrInvalidArgument)
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updated_at"] = time.Now().UTC()
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Model(&types.Recipe{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// IsUniqueViolation recognizes the partial-unique-index trip on both the
// Postgres driver and the SQLite test database.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
