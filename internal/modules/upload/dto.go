package upload

// addAttachmentRequest is the body of POST /uploads/:id/attachment.
// Content is the raw attachment bytes, base64-encoded.
type addAttachmentRequest struct {
	Content  string `json:"content" binding:"required"`
	Filename string `json:"filename" binding:"required"`
}
