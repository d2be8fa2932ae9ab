package mailin

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the mail receiver endpoint; the group must carry
// the internal token middleware.
func RegisterRoutes(r gin.IRoutes, h *Handler) {
	r.POST("/inbound/mail", h.Ingest)
}
