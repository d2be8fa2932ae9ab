package mailin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"snapwall/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Ingest handles POST /inbound/mail from the mail receiver.
func (h *Handler) Ingest(c *gin.Context) {
	var msg InboundMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed inbound message"})
		return
	}

	u, err := h.service.Ingest(c.Request.Context(), msg)
	if err != nil {
		response.AppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": u.ID})
}
