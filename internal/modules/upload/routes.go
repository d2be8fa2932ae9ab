package upload

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes mounts the unauthenticated listing endpoint.
func RegisterPublicRoutes(r gin.IRoutes, h *Handler) {
	r.GET("/", h.List)
}

// RegisterProtectedRoutes mounts the lifecycle endpoints; the group must
// carry the bearer-auth middleware.
func RegisterProtectedRoutes(r gin.IRoutes, h *Handler) {
	r.POST("/", h.Create)
	r.POST("/uploads/:id/attachment", h.AddAttachment)
	r.PATCH("/uploads/:id", h.Publish)
}
