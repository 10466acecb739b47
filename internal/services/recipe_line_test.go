package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Bruce-k901/My-App-sub018/internal/data/repos/testutil"
	types "github.com/Bruce-k901/My-App-sub018/internal/domain"
	errs "github.com/Bruce-k901/My-App-sub018/internal/pkg/errors"
)

func TestSaveLineValidatesInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	companyID := uuid.New()

	out := testutil.SeedIngredient(t, ctx, env.db, companyID, "Chimichurri", "l")
	recipe := testutil.SeedRecipe(t, ctx, env.db, companyID, out.ID, "Chimichurri", "REC-CHI-001", types.RecipeStatusDraft)
	parsley := testutil.SeedIngredient(t, ctx, env.db, companyID, "Parsley", "g")

	if _, _, err := env.lineSvc.SaveLine(ctx, recipe.ID, uuid.New(), LineInput{
		IngredientID: parsley.ID, Quantity: 0, Unit: "g",
	}); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("zero quantity: err = %v, want invalid argument", err)
	}
	if _, _, err := env.lineSvc.SaveLine(ctx, recipe.ID, uuid.New(), LineInput{
		Quantity: 50, Unit: "g",
	}); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("missing ingredient: err = %v, want invalid argument", err)
	}
}

// A store outage during first-line document generation must surface to the
// caller; the line commit alone reads as success and the trigger never fires
// again once a second line lands.
func TestSaveLineSurfacesDocumentGenerationFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	companyID := uuid.New()
	userID := uuid.New()

	out := testutil.SeedIngredient(t, ctx, env.db, companyID, "Brioche Bun", "each")
	recipe := testutil.SeedRecipe(t, ctx, env.db, companyID, out.ID, "Brioche Bun", "REC-BRI-001", types.RecipeStatusDraft)
	flour := testutil.SeedIngredient(t, ctx, env.db, companyID, "Flour", "g")

	// Take the document table away to simulate a transient store outage.
	if err := env.db.Exec(`ALTER TABLE procedure_document RENAME TO procedure_document_offline`).Error; err != nil {
		t.Fatalf("rename table: %v", err)
	}

	line, docID, err := env.lineSvc.SaveLine(ctx, recipe.ID, userID, LineInput{
		IngredientID: flour.ID, Quantity: 500, Unit: "g", Allergens: []string{"gluten"},
	})
	if err == nil {
		t.Fatal("expected an error when document generation fails")
	}
	if line == nil {
		t.Fatal("the line itself committed and must be returned")
	}
	if docID != nil {
		t.Fatal("no document id on failure")
	}

	// The line is durable and the count is still one, so a retry can succeed.
	count, cntErr := env.lineRepo.CountByRecipe(dbcOf(ctx), recipe.ID)
	if cntErr != nil {
		t.Fatalf("count lines: %v", cntErr)
	}
	if count != 1 {
		t.Fatalf("line count = %d, want 1", count)
	}

	if err := env.db.Exec(`ALTER TABLE procedure_document_offline RENAME TO procedure_document`).Error; err != nil {
		t.Fatalf("restore table: %v", err)
	}

	retryDoc, err := env.docSvc.GenerateOnFirstLine(ctx, recipe.ID, companyID, userID)
	if err != nil {
		t.Fatalf("retry after outage: %v", err)
	}
	if retryDoc == nil {
		t.Fatal("retry must generate the document")
	}

	reloaded, err := env.recipeRepo.GetByID(dbcOf(ctx), recipe.ID)
	if err != nil {
		t.Fatalf("reload recipe: %v", err)
	}
	if reloaded.Status != types.RecipeStatusActive {
		t.Fatalf("recipe status = %q, want active after recovery", reloaded.Status)
	}
	if reloaded.LinkedDocumentID == nil || *reloaded.LinkedDocumentID != *retryDoc {
		t.Fatal("recipe not linked to the recovered document")
	}
}
