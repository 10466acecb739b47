package domain

import (
	"github.com/Bruce-k901/My-App-sub018/internal/domain/catalog"
	"github.com/Bruce-k901/My-App-sub018/internal/domain/docs"
	"github.com/Bruce-k901/My-App-sub018/internal/domain/identity"
	"github.com/Bruce-k901/My-App-sub018/internal/domain/recipes"
)

type User = identity.User

type Ingredient = catalog.Ingredient

type Recipe = recipes.Recipe
type RecipeLine = recipes.RecipeLine
type RecipeStatus = recipes.RecipeStatus

const (
	RecipeStatusDraft    = recipes.RecipeStatusDraft
	RecipeStatusActive   = recipes.RecipeStatusActive
	RecipeStatusArchived = recipes.RecipeStatusArchived
)

type ProcedureDocument = docs.ProcedureDocument
type DocumentStatus = docs.DocumentStatus

const (
	DocumentStatusDraft    = docs.DocumentStatusDraft
	DocumentStatusArchived = docs.DocumentStatusArchived
)

type DocumentHeader = docs.DocumentHeader
type DocumentContent = docs.DocumentContent
type IngredientRow = docs.IngredientRow
type StorageInfo = docs.StorageInfo
type PrintMetadata = docs.PrintMetadata
