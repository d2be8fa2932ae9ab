package auth

import (
	"net/http"

	"snapwall/internal/pkg/apperr"
)

var (
	ErrUnableToParseResponse = apperr.New(http.StatusInternalServerError, 0, "UNABLE_TO_PARSE_RESPONSE", "unable to parse identity provider response")
	ErrIdentityTokenMissing  = apperr.New(http.StatusUnauthorized, 1, "IDENTITY_TOKEN_MISSING", "did not get a token")
	ErrUnauthorized          = apperr.New(http.StatusUnauthorized, 2, "UNAUTHORIZED", "unauthorized")
	ErrIdentityLookupFailed  = apperr.New(http.StatusBadGateway, 3, "IDENTITY_LOOKUP_FAILED", "unable to retrieve user details")
	ErrProviderUnreachable   = apperr.New(http.StatusBadGateway, 4, "IDENTITY_PROVIDER_UNREACHABLE", "unable to contact identity provider")
)
