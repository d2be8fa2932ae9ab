package upload

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"snapwall/internal/middleware"
	"snapwall/internal/pkg/response"
)

const (
	defaultListLimit = 3
	maxListLimit     = 36
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /. Response is the bare array of published uploads,
// newest first.
func (h *Handler) List(c *gin.Context) {
	var startingFrom *time.Time
	if raw := c.Query("startingFrom"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "startingFrom must be an RFC3339 timestamp"})
			return
		}
		startingFrom = &t
	}

	limit := defaultListLimit
	if n, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = n
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	uploads, err := h.service.List(c.Request.Context(), startingFrom, limit)
	if err != nil {
		response.AppError(c, err)
		return
	}

	c.JSON(http.StatusOK, uploads)
}

// Create handles POST /. The caller becomes the owner of a fresh draft.
func (h *Handler) Create(c *gin.Context) {
	owner, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	u, err := h.service.Create(c.Request.Context(), owner)
	if err != nil {
		response.AppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": u.ID})
}

// AddAttachment handles POST /uploads/:id/attachment.
func (h *Handler) AddAttachment(c *gin.Context) {
	owner, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req addAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AppError(c, ErrIllegalAttachment)
		return
	}

	content, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		response.AppError(c, ErrIllegalAttachment)
		return
	}

	if err := h.service.AddAttachment(c.Request.Context(), c.Param("id"), owner.ID, content, req.Filename); err != nil {
		response.AppError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// Publish handles PATCH /uploads/:id.
func (h *Handler) Publish(c *gin.Context) {
	owner, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := h.service.Publish(c.Request.Context(), c.Param("id"), owner.ID); err != nil {
		response.AppError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
