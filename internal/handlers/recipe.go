package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/Bruce-k901/My-App-sub018/internal/domain"
	"github.com/Bruce-k901/My-App-sub018/internal/requestdata"
	"github.com/Bruce-k901/My-App-sub018/internal/services"
)

type RecipeHandler struct {
	recipeSvc  services.RecipeService
	versionSvc services.RecipeVersionService
}

func NewRecipeHandler(recipeSvc services.RecipeService, versionSvc services.RecipeVersionService) *RecipeHandler {
	return &RecipeHandler{recipeSvc: recipeSvc, versionSvc: versionSvc}
}

// GET /api/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	recipe, lines, err := h.recipeSvc.Get(c.Request.Context(), recipeID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"recipe": recipe, "lines": lines})
}

// PUT /api/recipes/:id
//
// Editing an already-active recipe archives the persisted state before the
// edits land; draft saves apply directly.
func (h *RecipeHandler) Save(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	var body struct {
		Updates map[string]interface{} `json:"updates"`
		Notes   string                 `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	result, err := h.versionSvc.SaveActiveRecipe(c.Request.Context(), recipeID, currentUserID(c), body.Updates, body.Notes)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// PATCH /api/recipes/:id/status
func (h *RecipeHandler) SetStatus(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	if err := h.versionSvc.SetStatus(c.Request.Context(), recipeID, types.RecipeStatus(body.Status), currentUserID(c)); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": body.Status})
}

func currentUserID(c *gin.Context) uuid.UUID {
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		return rd.UserID
	}
	return uuid.Nil
}
