package notify

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUpload struct {
	ID        string `json:"id"`
	Published bool   `json:"published"`
}

func TestFanout_PublishedHitsWebhookAndHub(t *testing.T) {
	received := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- body
	}))
	defer srv.Close()

	hub, wsURL := setupHubServer(t)
	conn := dialSubscriber(t, wsURL)
	waitForCount(t, hub, 1)

	f := NewFanout(NewWebhookSink(srv.URL, time.Second), hub)
	f.Published(fakeUpload{ID: "u-1", Published: true})

	select {
	case body := <-received:
		assert.JSONEq(t, `{"id":"u-1","published":true}`, string(body))
	case <-time.After(2 * time.Second):
		t.Fatal("webhook never called")
	}

	assert.JSONEq(t, `{"id":"u-1","published":true}`, readFrame(t, conn))
}

func TestFanout_WebhookFailureDoesNotStopBroadcast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	hub, wsURL := setupHubServer(t)
	conn := dialSubscriber(t, wsURL)
	waitForCount(t, hub, 1)

	f := NewFanout(NewWebhookSink(srv.URL, time.Second), hub)
	f.Published(fakeUpload{ID: "u-2", Published: true})

	assert.JSONEq(t, `{"id":"u-2","published":true}`, readFrame(t, conn))
}

func TestFanout_IngestedSkipsWebhook(t *testing.T) {
	webhookCalled := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		webhookCalled <- struct{}{}
	}))
	defer srv.Close()

	hub, wsURL := setupHubServer(t)
	conn := dialSubscriber(t, wsURL)
	waitForCount(t, hub, 1)

	f := NewFanout(NewWebhookSink(srv.URL, time.Second), hub)
	f.Ingested(fakeUpload{ID: "u-3", Published: true})

	assert.JSONEq(t, `{"id":"u-3","published":true}`, readFrame(t, conn))

	select {
	case <-webhookCalled:
		t.Fatal("mail-origin records must not hit the webhook")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestFanout_NoSinksConfigured(t *testing.T) {
	f := NewFanout(NewWebhookSink("", time.Second), nil)
	require.NotPanics(t, func() {
		f.Published(fakeUpload{ID: "u-4"})
		f.Ingested(fakeUpload{ID: "u-4"})
	})
}
