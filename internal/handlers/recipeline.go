package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Bruce-k901/My-App-sub018/internal/services"
)

type RecipeLineHandler struct {
	lineSvc services.RecipeLineService
}

func NewRecipeLineHandler(lineSvc services.RecipeLineService) *RecipeLineHandler {
	return &RecipeLineHandler{lineSvc: lineSvc}
}

// POST /api/recipes/:id/lines
func (h *RecipeLineHandler) SaveLine(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	var body services.LineInput
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	line, docID, err := h.lineSvc.SaveLine(c.Request.Context(), recipeID, currentUserID(c), body)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"line": line, "document_id": docID})
}
