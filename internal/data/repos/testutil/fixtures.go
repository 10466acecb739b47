package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/Bruce-k901/My-App-sub018/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, companyID uuid.UUID, email, firstName, lastName string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		CompanyID: companyID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedIngredient(tb testing.TB, ctx context.Context, tx *gorm.DB, companyID uuid.UUID, name, baseUnit string) *types.Ingredient {
	tb.Helper()
	ing := &types.Ingredient{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      name,
		BaseUnit:  baseUnit,
	}
	if err := tx.WithContext(ctx).Create(ing).Error; err != nil {
		tb.Fatalf("seed ingredient: %v", err)
	}
	return ing
}

func SeedRecipe(tb testing.TB, ctx context.Context, tx *gorm.DB, companyID, outputIngredientID uuid.UUID, name, code string, status types.RecipeStatus) *types.Recipe {
	tb.Helper()
	r := &types.Recipe{
		ID:                 uuid.New(),
		CompanyID:          companyID,
		Name:               name,
		Code:               code,
		RecipeType:         "prep",
		Status:             status,
		OutputIngredientID: outputIngredientID,
		VersionNumber:      1.0,
		IsActive:           status == types.RecipeStatusActive,
		Allergens:          datatypes.JSON([]byte(`[]`)),
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed recipe: %v", err)
	}
	return r
}

func SeedRecipeLine(tb testing.TB, ctx context.Context, tx *gorm.DB, recipeID, ingredientID uuid.UUID, qty float64, unit string, allergens string, position int) *types.RecipeLine {
	tb.Helper()
	if allergens == "" {
		allergens = "[]"
	}
	l := &types.RecipeLine{
		ID:           uuid.New(),
		RecipeID:     recipeID,
		IngredientID: ingredientID,
		Quantity:     qty,
		Unit:         unit,
		Allergens:    datatypes.JSON([]byte(allergens)),
		Position:     position,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed recipe line: %v", err)
	}
	return l
}
