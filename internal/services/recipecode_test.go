package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/Bruce-k901/My-App-sub018/internal/data/repos/testutil"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/dbctx"
)

func TestExtractPrefix(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Brioche Bun", "BRI"},
		{"Ox", "OXX"},
		{"b", "BXX"},
		{"", "XXX"},
		{"12-34", "XXX"},
		{"  tomato sauce ", "TOM"},
		{"a1b2c3d4", "ABC"},
	}
	for _, tc := range cases {
		if got := extractPrefix(tc.name); got != tc.want {
			t.Errorf("extractPrefix(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestNextSequenceParsesDigits(t *testing.T) {
	scope := "REC-BRI-"

	if got := nextSequence(nil, scope); got != 1 {
		t.Fatalf("empty scope: got %d, want 1", got)
	}
	if got := nextSequence([]string{"REC-BRI-001", "REC-BRI-002"}, scope); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
	// Numeric parsing keeps ordering correct past the zero-padding width.
	if got := nextSequence([]string{"REC-BRI-999", "REC-BRI-1000"}, scope); got != 1001 {
		t.Fatalf("past padding width: got %d, want 1001", got)
	}
	// Garbage and foreign scopes are ignored.
	if got := nextSequence([]string{"REC-BRI-abc", "REC-TOM-050", "REC-BRI-007"}, scope); got != 8 {
		t.Fatalf("mixed input: got %d, want 8", got)
	}
}

func TestGenerateIncreasesAcrossIssuedCodes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	companyID := uuid.New()

	ing1 := testutil.SeedIngredient(t, ctx, env.db, companyID, "Brioche Bun", "each")
	testutil.SeedRecipe(t, ctx, env.db, companyID, ing1.ID, "Brioche Bun", "REC-BRI-001", "draft")

	code, err := env.codeSvc.Generate(dbctx.Context{Ctx: ctx}, "Brioche Bun", companyID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if code != "REC-BRI-002" {
		t.Fatalf("got %q, want REC-BRI-002", code)
	}

	// A different company scope starts from the beginning.
	otherCompany := uuid.New()
	code, err = env.codeSvc.Generate(dbctx.Context{Ctx: ctx}, "Brioche Bun", otherCompany)
	if err != nil {
		t.Fatalf("Generate other company: %v", err)
	}
	if code != "REC-BRI-001" {
		t.Fatalf("got %q, want REC-BRI-001", code)
	}
}

func TestGenerateBeyondThreeDigitSequence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	companyID := uuid.New()

	ingA := testutil.SeedIngredient(t, ctx, env.db, companyID, "Salsa Verde A", "l")
	ingB := testutil.SeedIngredient(t, ctx, env.db, companyID, "Salsa Verde B", "l")
	testutil.SeedRecipe(t, ctx, env.db, companyID, ingA.ID, "Salsa Verde", "REC-SAL-999", "draft")
	testutil.SeedRecipe(t, ctx, env.db, companyID, ingB.ID, "Salsa Verde", "REC-SAL-1000", "draft")

	code, err := env.codeSvc.Generate(dbctx.Context{Ctx: ctx}, "Salsa Verde", companyID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if code != "REC-SAL-1001" {
		t.Fatalf("got %q, want REC-SAL-1001", code)
	}
}

func TestGenerateDegradesToFirstSequenceOnLookupFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Simulate an unavailable schema; generation must not fail the caller.
	if err := env.db.Exec(`DROP TABLE recipe`).Error; err != nil {
		t.Fatalf("drop table: %v", err)
	}
	code, err := env.codeSvc.Generate(dbctx.Context{Ctx: ctx}, "Brioche Bun", uuid.New())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if code != "REC-BRI-001" {
		t.Fatalf("got %q, want REC-BRI-001", code)
	}
}

func TestGenerateRejectsEmptyName(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.codeSvc.Generate(dbctx.Context{Ctx: context.Background()}, "   ", uuid.New()); err == nil {
		t.Fatal("expected error for empty name")
	}
}
