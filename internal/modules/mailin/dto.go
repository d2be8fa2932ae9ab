package mailin

// InboundMessage is the parsed message structure the mail receiver
// delivers. Attachment content arrives base64-encoded on the wire and is
// decoded by the JSON layer.
type InboundMessage struct {
	Subject     string              `json:"subject"`
	Text        string              `json:"text"`
	HTML        string              `json:"html"`
	From        string              `json:"from" binding:"required"`
	To          string              `json:"to"`
	Attachments []InboundAttachment `json:"attachments"`
}

type InboundAttachment struct {
	Checksum string `json:"checksum"`
	FileName string `json:"fileName"`
	Content  []byte `json:"content"`
}
