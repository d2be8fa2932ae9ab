package notify

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Fanout delivers a finalized upload to the configured sinks. Delivery is
// best-effort: each sink's failure is logged and isolated from the other,
// and nothing propagates back to the transition that triggered it.
type Fanout struct {
	webhook *WebhookSink
	hub     *Hub
}

func NewFanout(webhook *WebhookSink, hub *Hub) *Fanout {
	return &Fanout{webhook: webhook, hub: hub}
}

// Published fires both sinks for an upload published over HTTP.
func (f *Fanout) Published(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Error("serializing upload for fanout", "err", err)
		return
	}

	if f.webhook != nil && f.webhook.Enabled() {
		if err := f.webhook.Notify(context.Background(), payload); err != nil {
			slog.Error("webhook notify failed", "err", err)
		} else {
			slog.Info("webhook notified")
		}
	}

	f.broadcast(payload)
}

// Ingested fires the broadcast sink only; mail-origin records do not hit
// the webhook.
func (f *Fanout) Ingested(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Error("serializing upload for fanout", "err", err)
		return
	}
	f.broadcast(payload)
}

func (f *Fanout) broadcast(payload []byte) {
	if f.hub == nil {
		return
	}
	f.hub.Broadcast(payload)
	slog.Debug("broadcast delivered", "subscribers", f.hub.Count())
}
