package gmailclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

func decodeRaw(t *testing.T, raw string) string {
	t.Helper()
	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	return string(decoded)
}

func TestBuildMessage(t *testing.T) {
	raw, err := buildMessage("office@example.com", "pat@example.com", "New gig: Smith Wedding", "See you there")
	require.NoError(t, err)

	msg := decodeRaw(t, raw)
	assert.Contains(t, msg, "From: office@example.com\r\n")
	assert.Contains(t, msg, "To: pat@example.com\r\n")
	assert.Contains(t, msg, "Subject: New gig: Smith Wedding\r\n")
	assert.Contains(t, msg, "\r\n\r\nSee you there")
}

func TestBuildMessage_NoSender(t *testing.T) {
	raw, err := buildMessage("", "pat@example.com", "Hi", "Body")
	require.NoError(t, err)
	assert.NotContains(t, decodeRaw(t, raw), "From:")
}

func TestBuildMessage_Rejects(t *testing.T) {
	_, err := buildMessage("", "  ", "Hi", "Body")
	assert.Error(t, err)

	_, err = buildMessage("", "pat@example.com", "Hi\r\nBcc: evil@example.com", "Body")
	assert.Error(t, err)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service, err := gmail.NewService(context.Background(),
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	return newClient(service, "office@example.com")
}

func TestSendEmail_PostsRawMessage(t *testing.T) {
	var mu sync.Mutex
	var sent []gmail.Message

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var msg gmail.Message
		require.NoError(t, json.Unmarshal(body, &msg))
		mu.Lock()
		sent = append(sent, msg)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"abc"}`))
	})
	client.interval = 0

	require.NoError(t, client.SendEmail(context.Background(), "pat@example.com", "New gig", "Details"))

	require.Len(t, sent, 1)
	assert.Contains(t, decodeRaw(t, sent[0].Raw), "To: pat@example.com")
}

func TestSendEmail_APIErrorIsReturned(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":500,"message":"boom"}}`, http.StatusInternalServerError)
	})
	client.interval = 0

	err := client.SendEmail(context.Background(), "pat@example.com", "New gig", "Details")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send email")
}

func TestSendEmail_Throttles(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"abc"}`))
	})
	client.interval = 50 * time.Millisecond

	start := time.Now()
	require.NoError(t, client.SendEmail(context.Background(), "a@example.com", "1", "x"))
	require.NoError(t, client.SendEmail(context.Background(), "b@example.com", "2", "x"))

	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestSendEmail_CancelledWhileThrottled(t *testing.T) {
	var calls int
	var mu sync.Mutex
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"abc"}`))
	})
	client.interval = time.Hour

	require.NoError(t, client.SendEmail(context.Background(), "a@example.com", "1", "x"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := client.SendEmail(ctx, "b@example.com", "2", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Minute)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls, "the cancelled email never reaches Gmail")
}

func TestSendEmail_CancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.SendEmail(ctx, "pat@example.com", "New gig", "Details")
	assert.ErrorIs(t, err, context.Canceled)
}
