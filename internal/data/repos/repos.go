package repos

import (
	"gorm.io/gorm"

	"github.com/Bruce-k901/My-App-sub018/internal/data/repos/catalog"
	"github.com/Bruce-k901/My-App-sub018/internal/data/repos/docs"
	"github.com/Bruce-k901/My-App-sub018/internal/data/repos/identity"
	"github.com/Bruce-k901/My-App-sub018/internal/data/repos/recipes"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/logger"
)

type UserRepo = identity.UserRepo
type IngredientRepo = catalog.IngredientRepo
type RecipeRepo = recipes.RecipeRepo
type RecipeLineRepo = recipes.RecipeLineRepo
type ProcedureDocumentRepo = docs.ProcedureDocumentRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return identity.NewUserRepo(db, baseLog)
}
func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
	return catalog.NewIngredientRepo(db, baseLog)
}
func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return recipes.NewRecipeRepo(db, baseLog)
}
func NewRecipeLineRepo(db *gorm.DB, baseLog *logger.Logger) RecipeLineRepo {
	return recipes.NewRecipeLineRepo(db, baseLog)
}
func NewProcedureDocumentRepo(db *gorm.DB, baseLog *logger.Logger) ProcedureDocumentRepo {
	return docs.NewProcedureDocumentRepo(db, baseLog)
}

// IsUniqueViolation re-exported for services that map constraint trips to
// conflict handling.
var IsUniqueViolation = recipes.IsUniqueViolation
