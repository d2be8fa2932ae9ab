package upload

import (
	"net/http"

	"snapwall/internal/pkg/apperr"
)

// Lifecycle error taxonomy. Numeric codes are stable and wire-visible.
//
// ErrNoEligibleUpload deliberately covers wrong owner, locked, already
// published and nonexistent id alike: callers cannot probe which uploads
// exist or who owns them.
var (
	ErrCreateFailed            = apperr.New(http.StatusInternalServerError, 5, "CREATE_FAILED", "unable to create an upload")
	ErrNoEligibleUpload        = apperr.New(http.StatusForbidden, 6, "NO_ELIGIBLE_UPLOAD", "no suitable upload found")
	ErrIllegalAttachment       = apperr.New(http.StatusBadRequest, 7, "ILLEGAL_ATTACHMENT", "illegal file")
	ErrAttachmentPersistFailed = apperr.New(http.StatusInternalServerError, 8, "ATTACHMENT_PERSIST_FAILED", "unable to add attachment")
	ErrAttachmentRequired      = apperr.New(http.StatusForbidden, 10, "ATTACHMENT_REQUIRED", "at least one attachment required")
	ErrPublishFailed           = apperr.New(http.StatusInternalServerError, 11, "PUBLISH_FAILED", "unable to publish upload")
	ErrQueryFailed             = apperr.New(http.StatusInternalServerError, 12, "QUERY_FAILED", "unable to get uploads")
)
