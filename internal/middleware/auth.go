package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"snapwall/internal/domain"
	"snapwall/internal/pkg/response"
)

const userContextKey = "current_user"

// IdentityResolver turns a bearer token into a user profile, normally by
// asking the external identity provider.
type IdentityResolver interface {
	ResolveUser(ctx context.Context, token string) (domain.User, error)
}

// Authenticate resolves the Authorization bearer token on every request
// and attaches the resulting profile to the context. Resolution failures
// are written as-is (the resolver returns classified errors).
func Authenticate(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			token = strings.TrimSpace(parts[1])
		}

		user, err := resolver.ResolveUser(c.Request.Context(), token)
		if err != nil {
			response.AppError(c, err)
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the profile attached by Authenticate.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := v.(domain.User)
	return user, ok
}
