package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/Bruce-k901/My-App-sub018/internal/data/repos/testutil"
	types "github.com/Bruce-k901/My-App-sub018/internal/domain"
)

// Full lifecycle: prep-item toggle creates the placeholder, the first line
// derives the document, and a later save archives version 1.0.
func TestPrepItemLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	companyID := uuid.New()
	chef := testutil.SeedUser(t, ctx, env.db, companyID, "chef@example.com", "Jo", "Park")

	bun := testutil.SeedIngredient(t, ctx, env.db, companyID, "Brioche Bun", "each")

	// Toggling the prep-item flag creates the draft placeholder.
	resolved, err := env.prepLinkSvc.Resolve(ctx, bun.ID, true, chef.ID)
	if err != nil {
		t.Fatalf("enable prep item: %v", err)
	}
	if resolved.Action != ResolveActionCreated || resolved.RecipeID == nil {
		t.Fatalf("resolve = %+v, want a created recipe", resolved)
	}
	recipeID := *resolved.RecipeID

	recipe, err := env.recipeRepo.GetByID(dbcOf(ctx), recipeID)
	if err != nil {
		t.Fatalf("load placeholder: %v", err)
	}
	if recipe.Code != "REC-BRI-001" || recipe.Status != types.RecipeStatusDraft || recipe.VersionNumber != 1.0 {
		t.Fatalf("placeholder = %q %q v%v, want REC-BRI-001 draft v1.0", recipe.Code, recipe.Status, recipe.VersionNumber)
	}
	if recipe.LinkedDocumentID != nil {
		t.Fatal("placeholder must not carry a document yet")
	}

	// The first ingredient line derives the procedure document.
	flour := testutil.SeedIngredient(t, ctx, env.db, companyID, "Strong Flour", "g")
	line, docID, err := env.lineSvc.SaveLine(ctx, recipeID, chef.ID, LineInput{
		IngredientID: flour.ID,
		Quantity:     500,
		Unit:         "g",
		Allergens:    []string{"gluten"},
	})
	if err != nil {
		t.Fatalf("save first line: %v", err)
	}
	if line.Position != 1 {
		t.Errorf("line position = %d, want 1", line.Position)
	}
	if docID == nil {
		t.Fatal("first line must generate a document")
	}

	doc, err := env.docRepo.GetByID(dbcOf(ctx), *docID)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	if doc.Title != "Brioche Bun" || doc.Status != types.DocumentStatusDraft {
		t.Errorf("document = %q %q, want Brioche Bun Draft", doc.Title, doc.Status)
	}
	var content types.DocumentContent
	if err := json.Unmarshal(doc.Content, &content); err != nil {
		t.Fatalf("decode content: %v", err)
	}
	if len(content.Ingredients) != 1 || content.Ingredients[0].Name != "Strong Flour" {
		t.Errorf("ingredient table = %+v", content.Ingredients)
	}
	if content.Header.Author != "Jo Park" {
		t.Errorf("author = %q", content.Header.Author)
	}

	recipe, err = env.recipeRepo.GetByID(dbcOf(ctx), recipeID)
	if err != nil {
		t.Fatalf("reload recipe: %v", err)
	}
	if recipe.Status != types.RecipeStatusActive {
		t.Fatalf("recipe status = %q, want active after first line", recipe.Status)
	}

	// A second line neither regenerates nor duplicates the document.
	butter := testutil.SeedIngredient(t, ctx, env.db, companyID, "Butter", "g")
	line, secondDoc, err := env.lineSvc.SaveLine(ctx, recipeID, chef.ID, LineInput{
		IngredientID: butter.ID,
		Quantity:     120,
		Unit:         "g",
		Allergens:    []string{"milk"},
	})
	if err != nil {
		t.Fatalf("save second line: %v", err)
	}
	if line.Position != 2 {
		t.Errorf("second line position = %d, want 2", line.Position)
	}
	if secondDoc != nil {
		t.Fatal("second line must not generate another document")
	}

	// Saving the active recipe archives the pre-edit state.
	res, err := env.versionSvc.SaveActiveRecipe(ctx, recipeID, chef.ID, map[string]interface{}{
		"storage_instructions": "Cool, covered, use within 2 days.",
		"shelf_life_days":      2,
	}, "storage guidance added")
	if err != nil {
		t.Fatalf("save active recipe: %v", err)
	}
	if res.ArchivedVersion != 1.0 || res.LiveVersion != 1.1 {
		t.Fatalf("versions = %v / %v, want 1.0 / 1.1", res.ArchivedVersion, res.LiveVersion)
	}

	archived, err := env.recipeRepo.GetByID(dbcOf(ctx), res.ArchivedID)
	if err != nil {
		t.Fatalf("load archive: %v", err)
	}
	if archived.StorageInstructions != "" {
		t.Errorf("archive carries post-edit storage %q", archived.StorageInstructions)
	}
	archivedLines, err := env.lineRepo.ListByRecipe(dbcOf(ctx), res.ArchivedID)
	if err != nil {
		t.Fatalf("archived lines: %v", err)
	}
	if len(archivedLines) != 2 {
		t.Fatalf("archived line count = %d, want 2", len(archivedLines))
	}

	live, err := env.recipeRepo.GetByID(dbcOf(ctx), recipeID)
	if err != nil {
		t.Fatalf("reload live: %v", err)
	}
	if live.VersionNumber != 1.1 || live.StorageInstructions == "" {
		t.Fatalf("live = v%v storage %q, want 1.1 with storage set", live.VersionNumber, live.StorageInstructions)
	}

	// The document followed the recipe through the archive.
	liveDoc, err := env.docRepo.GetByID(dbcOf(ctx), *docID)
	if err != nil {
		t.Fatalf("reload document: %v", err)
	}
	if liveDoc.VersionNumber != 1.1 {
		t.Errorf("live document version = %v, want 1.1", liveDoc.VersionNumber)
	}
	var snapCount int64
	if err := env.db.Model(&types.ProcedureDocument{}).
		Where("archived_from_document_id = ?", *docID).Count(&snapCount).Error; err != nil {
		t.Fatalf("count document snapshots: %v", err)
	}
	if snapCount != 1 {
		t.Fatalf("document snapshots = %d, want 1", snapCount)
	}
}
