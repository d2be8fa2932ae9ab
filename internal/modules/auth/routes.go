package auth

import "github.com/gin-gonic/gin"

func RegisterPublicRoutes(r gin.IRoutes, h *Handler) {
	r.GET("/authenticate", h.Authenticate)
	r.GET("/oauth/code", h.OAuthCode)
}

func RegisterProtectedRoutes(r gin.IRoutes, h *Handler) {
	r.GET("/me", h.Me)
}
