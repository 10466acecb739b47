package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Bruce-k901/My-App-sub018/internal/services"
)

type DocumentHandler struct {
	docSvc services.ProcedureDocService
}

func NewDocumentHandler(docSvc services.ProcedureDocService) *DocumentHandler {
	return &DocumentHandler{docSvc: docSvc}
}

// GET /api/documents/:id/print
func (h *DocumentHandler) GetPrint(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	payload, err := h.docSvc.GetPrintPayload(c.Request.Context(), documentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, payload)
}
