package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/Bruce-k901/My-App-sub018/internal/pkg/dbctx"

	"github.com/Bruce-k901/My-App-sub018/internal/data/repos"
	"github.com/Bruce-k901/My-App-sub018/internal/data/repos/testutil"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/logger"
)

type testEnv struct {
	db  *gorm.DB
	log *logger.Logger

	userRepo       repos.UserRepo
	ingredientRepo repos.IngredientRepo
	recipeRepo     repos.RecipeRepo
	lineRepo       repos.RecipeLineRepo
	docRepo        repos.ProcedureDocumentRepo

	codeSvc     RecipeCodeService
	prepLinkSvc PrepLinkService
	docSvc      ProcedureDocService
	lineSvc     RecipeLineService
	versionSvc  RecipeVersionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb := testutil.DB(t)
	log := testutil.Logger(t)

	env := &testEnv{
		db:             gdb,
		log:            log,
		userRepo:       repos.NewUserRepo(gdb, log),
		ingredientRepo: repos.NewIngredientRepo(gdb, log),
		recipeRepo:     repos.NewRecipeRepo(gdb, log),
		lineRepo:       repos.NewRecipeLineRepo(gdb, log),
		docRepo:        repos.NewProcedureDocumentRepo(gdb, log),
	}
	env.codeSvc = NewRecipeCodeService(gdb, log, env.recipeRepo)
	env.prepLinkSvc = NewPrepLinkService(gdb, log, env.ingredientRepo, env.recipeRepo, env.codeSvc)
	env.docSvc = NewProcedureDocService(gdb, log, env.recipeRepo, env.lineRepo, env.ingredientRepo, env.userRepo, env.docRepo, nil)
	env.lineSvc = NewRecipeLineService(gdb, log, env.recipeRepo, env.lineRepo, env.docSvc)
	env.versionSvc = NewRecipeVersionService(gdb, log, env.recipeRepo, env.lineRepo, env.docRepo, nil)
	return env
}

func dbcOf(ctx context.Context) dbctx.Context {
	return dbctx.Context{Ctx: ctx}
}
