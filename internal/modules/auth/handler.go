package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"snapwall/internal/middleware"
	"snapwall/internal/pkg/response"
)

type Handler struct {
	client     *Client
	states     *StateStore
	redirectTo string // default frontend to bounce tokens to; empty = return JSON
}

func NewHandler(client *Client, states *StateStore, redirectTo string) *Handler {
	return &Handler{client: client, states: states, redirectTo: redirectTo}
}

// Authenticate handles GET /authenticate: mint a state token and bounce
// the browser to the provider. An optional returnUrl query overrides the
// configured redirect target for this one flow.
func (h *Handler) Authenticate(c *gin.Context) {
	returnURL := c.Query("returnUrl")
	if returnURL == "" {
		returnURL = h.redirectTo
	}

	state := h.states.Issue(returnURL)
	c.Redirect(http.StatusFound, h.client.AuthorizeURL(state))
}

// OAuthCode handles GET /oauth/code: the provider redirect back. The
// state token must match an outstanding one; it is consumed either way.
func (h *Handler) OAuthCode(c *gin.Context) {
	returnURL, ok := h.states.Consume(c.Query("state"))
	if !ok {
		response.AppError(c, ErrUnauthorized)
		return
	}

	token, err := h.client.ExchangeCode(c.Request.Context(), c.Query("code"))
	if err != nil {
		response.AppError(c, err)
		return
	}

	if returnURL != "" {
		c.Redirect(http.StatusFound, returnURL+"?token="+token)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Me handles GET /me for authenticated callers.
func (h *Handler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.AppError(c, ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
