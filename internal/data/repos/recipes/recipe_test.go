package recipes

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Bruce-k901/My-App-sub018/internal/data/repos/testutil"
	types "github.com/Bruce-k901/My-App-sub018/internal/domain"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/dbctx"
	errs "github.com/Bruce-k901/My-App-sub018/internal/pkg/errors"
)

func newRecipe(companyID, outputIngredientID uuid.UUID, code string, status types.RecipeStatus) *types.Recipe {
	return &types.Recipe{
		ID:                 uuid.New(),
		CompanyID:          companyID,
		Name:               "Test Recipe",
		Code:               code,
		RecipeType:         "prep",
		Status:             status,
		OutputIngredientID: outputIngredientID,
		VersionNumber:      1.0,
		Allergens:          datatypes.JSON([]byte(`[]`)),
	}
}

func TestCreateEnforcesSingleLiveRecipePerOutput(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewRecipeRepo(gdb, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	companyID := uuid.New()
	outputID := uuid.New()

	if _, err := repo.Create(dbc, newRecipe(companyID, outputID, "REC-TST-001", types.RecipeStatusDraft)); err != nil {
		t.Fatalf("first live recipe: %v", err)
	}

	// Second draft for the same output trips the partial unique index.
	_, err := repo.Create(dbc, newRecipe(companyID, outputID, "REC-TST-002", types.RecipeStatusDraft))
	if !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("duplicate live: err = %v, want conflict", err)
	}
	_, err = repo.Create(dbc, newRecipe(companyID, outputID, "REC-TST-003", types.RecipeStatusActive))
	if !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("duplicate active: err = %v, want conflict", err)
	}

	// Archived snapshots never count toward the constraint.
	for i := 0; i < 3; i++ {
		if _, err := repo.Create(dbc, newRecipe(companyID, outputID, "REC-TST-001", types.RecipeStatusArchived)); err != nil {
			t.Fatalf("archived copy %d: %v", i, err)
		}
	}

	// Other companies and other outputs are unconstrained.
	if _, err := repo.Create(dbc, newRecipe(uuid.New(), outputID, "REC-TST-001", types.RecipeStatusDraft)); err != nil {
		t.Fatalf("other company: %v", err)
	}
	if _, err := repo.Create(dbc, newRecipe(companyID, uuid.New(), "REC-TST-004", types.RecipeStatusDraft)); err != nil {
		t.Fatalf("other output: %v", err)
	}
}

func TestGetLiveByOutputIngredientSkipsArchived(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewRecipeRepo(gdb, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	companyID := uuid.New()
	outputID := uuid.New()

	if _, err := repo.GetLiveByOutputIngredient(dbc, companyID, outputID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("empty table: err = %v, want not found", err)
	}

	if _, err := repo.Create(dbc, newRecipe(companyID, outputID, "REC-TST-001", types.RecipeStatusArchived)); err != nil {
		t.Fatalf("seed archived: %v", err)
	}
	if _, err := repo.GetLiveByOutputIngredient(dbc, companyID, outputID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("archived only: err = %v, want not found", err)
	}

	live, err := repo.Create(dbc, newRecipe(companyID, outputID, "REC-TST-002", types.RecipeStatusDraft))
	if err != nil {
		t.Fatalf("seed draft: %v", err)
	}
	got, err := repo.GetLiveByOutputIngredient(dbc, companyID, outputID)
	if err != nil {
		t.Fatalf("GetLiveByOutputIngredient: %v", err)
	}
	if got.ID != live.ID {
		t.Fatalf("got %s, want %s", got.ID, live.ID)
	}
}

func TestListCodesByPrefixScopesByCompany(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewRecipeRepo(gdb, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	companyID := uuid.New()
	for _, code := range []string{"REC-BRI-001", "REC-BRI-002", "REC-TOM-001"} {
		if _, err := repo.Create(dbc, newRecipe(companyID, uuid.New(), code, types.RecipeStatusDraft)); err != nil {
			t.Fatalf("seed %s: %v", code, err)
		}
	}
	if _, err := repo.Create(dbc, newRecipe(uuid.New(), uuid.New(), "REC-BRI-009", types.RecipeStatusDraft)); err != nil {
		t.Fatalf("seed other company: %v", err)
	}

	codes, err := repo.ListCodesByPrefix(dbc, companyID, "REC-BRI-")
	if err != nil {
		t.Fatalf("ListCodesByPrefix: %v", err)
	}
	if len(codes) != 2 {
		t.Fatalf("codes = %v, want the two in-company BRI codes", codes)
	}
}

func TestUpdateFieldsTouchesOnlyTargetRow(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewRecipeRepo(gdb, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	companyID := uuid.New()
	a, err := repo.Create(dbc, newRecipe(companyID, uuid.New(), "REC-AAA-001", types.RecipeStatusDraft))
	if err != nil {
		t.Fatalf("seed a: %v", err)
	}
	b, err := repo.Create(dbc, newRecipe(companyID, uuid.New(), "REC-BBB-001", types.RecipeStatusDraft))
	if err != nil {
		t.Fatalf("seed b: %v", err)
	}

	if err := repo.UpdateFields(dbc, a.ID, map[string]interface{}{"name": "Renamed"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	gotA, err := repo.GetByID(dbc, a.ID)
	if err != nil {
		t.Fatalf("reload a: %v", err)
	}
	if gotA.Name != "Renamed" {
		t.Errorf("a.Name = %q, want Renamed", gotA.Name)
	}
	gotB, err := repo.GetByID(dbc, b.ID)
	if err != nil {
		t.Fatalf("reload b: %v", err)
	}
	if gotB.Name == "Renamed" {
		t.Error("update leaked into another row")
	}
}
