package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"snapwall/internal/pkg/apperr"
)

// ErrWebhookNotifyFailed is logged by the fanout, never returned to the
// client: it can only happen after the triggering response completed.
var ErrWebhookNotifyFailed = apperr.New(http.StatusInternalServerError, 13, "WEBHOOK_NOTIFY_FAILED", "unable to notify webhook")

// WebhookSink POSTs the serialized record to a configured endpoint.
// An empty URL disables the sink. The client timeout bounds how long a
// slow endpoint can hold a fanout goroutine.
type WebhookSink struct {
	url        string
	httpClient *http.Client
}

func NewWebhookSink(url string, timeout time.Duration) *WebhookSink {
	return &WebhookSink{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (w *WebhookSink) Enabled() bool { return w.url != "" }

func (w *WebhookSink) Notify(ctx context.Context, payload []byte) error {
	if !w.Enabled() {
		return fmt.Errorf("webhook url not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return ErrWebhookNotifyFailed
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return ErrWebhookNotifyFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ErrWebhookNotifyFailed
	}
	return nil
}
