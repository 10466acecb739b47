package services

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Bruce-k901/My-App-sub018/internal/data/repos"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/dbctx"
	errs "github.com/Bruce-k901/My-App-sub018/internal/pkg/errors"
	"github.com/Bruce-k901/My-App-sub018/internal/pkg/logger"
)

const (
	codePrefixLen    = 3
	codeFillerLetter = 'X'
)

// RecipeCodeService issues human-readable recipe codes of the form
// REC-<3 letters>-<sequence>, scoped per company.
type RecipeCodeService interface {
	Generate(dbc dbctx.Context, name string, companyID uuid.UUID) (string, error)
}

type recipeCodeService struct {
	db         *gorm.DB
	log        *logger.Logger
	recipeRepo repos.RecipeRepo
}

func NewRecipeCodeService(db *gorm.DB, baseLog *logger.Logger, recipeRepo repos.RecipeRepo) RecipeCodeService {
	return &recipeCodeService{
		db:         db,
		log:        baseLog.With("service", "RecipeCodeService"),
		recipeRepo: recipeRepo,
	}
}

func (s *recipeCodeService) Generate(dbc dbctx.Context, name string, companyID uuid.UUID) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: ingredient name required for code generation", errs.ErrInvalidArgument)
	}
	if companyID == uuid.Nil {
		return "", fmt.Errorf("%w: missing company id", errs.ErrInvalidArgument)
	}

	prefix := extractPrefix(name)
	scope := fmt.Sprintf("REC-%s-", prefix)

	// Code uniqueness is a convenience, not a correctness invariant; a
	// failed lookup degrades to the first sequence instead of failing the
	// caller.
	next := 1
	codes, err := s.recipeRepo.ListCodesByPrefix(dbc, companyID, scope)
	if err != nil {
		s.log.Warn("code lookup failed, defaulting to first sequence", "error", err, "prefix", prefix)
	} else {
		next = nextSequence(codes, scope)
	}
	return fmt.Sprintf("REC-%s-%03d", prefix, next), nil
}

// extractPrefix keeps the first three letters of the name, uppercased,
// padding with a filler letter when fewer than three are present.
func extractPrefix(name string) string {
	letters := make([]rune, 0, codePrefixLen)
	for _, r := range name {
		if !unicode.IsLetter(r) {
			continue
		}
		letters = append(letters, unicode.ToUpper(r))
		if len(letters) == codePrefixLen {
			break
		}
	}
	for len(letters) < codePrefixLen {
		letters = append(letters, codeFillerLetter)
	}
	return string(letters)
}

// nextSequence parses the numeric suffix of every issued code under the
// scope. Parsing digits rather than comparing zero-padded strings keeps the
// sequence correct once a prefix passes 999 issued codes.
func nextSequence(codes []string, scope string) int {
	max := 0
	for _, code := range codes {
		if !strings.HasPrefix(code, scope) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(code, scope))
		if err != nil || n <= 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}
