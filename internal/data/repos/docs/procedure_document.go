package docs

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

type ProcedureDocumentRepo interface {
	Create(dbc dbctx.Context, row *types.ProcedureDocument) (*types.ProcedureDocument, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ProcedureDocument, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
}

type procedureDocumentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProcedureDocumentRepo(db *gorm.DB, log *logger.Logger) ProcedureDocumentRepo {
	return &procedureDocumentRepo{db: db, log: log.With("repo", "ProcedureDocumentRepo")}
}

func (r *procedureDocumentRepo) Create(dbc dbctx.Context, row *types.ProcedureDocument) (*types.ProcedureDocument, error) {
	if row == nil {
		return nil, fmt.Errorf("%w: missing document", errs.ErrInvalidArgument)
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if err := txx.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *procedureDocumentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ProcedureDocument, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: missing document id", errs.ErrInvalidArgument)
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out types.ProcedureDocument
	if err := txx.WithContext(dbc.Ctx).First(&out, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: document %s", errs.ErrNotFound, id)
		}
		return nil, err
	}
	return &out, nil
}

func (r *procedureDocumentRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: missing document id", errs.ErrInvalidArgument)
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
		Model(&types.ProcedureDocument{}).
		Where("id = ?", id).
		Updates(updates).Error
}
