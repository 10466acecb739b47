package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Bruce-k901/My-App-sub018/internal/requestdata"
	"github.com/Bruce-k901/My-App-sub018/internal/services"
)

type IngredientHandler struct {
	prepLinkSvc services.PrepLinkService
}

func NewIngredientHandler(prepLinkSvc services.PrepLinkService) *IngredientHandler {
	return &IngredientHandler{prepLinkSvc: prepLinkSvc}
}

// POST /api/ingredients/:id/prep-item
func (h *IngredientHandler) TogglePrepItem(c *gin.Context) {
	ingredientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	rd := requestdata.GetRequestData(c.Request.Context())
	userID := uuid.Nil
	if rd != nil {
		userID = rd.UserID
	}

	result, err := h.prepLinkSvc.Resolve(c.Request.Context(), ingredientID, body.Enabled, userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// POST /api/prep-links/reconcile
func (h *IngredientHandler) ReconcilePrepLinks(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.CompanyID == uuid.Nil {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	repaired, err := h.prepLinkSvc.ReconcileLinks(c.Request.Context(), rd.CompanyID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"repaired": repaired})
}
