package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dimitrije/futbol-api/internal/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamRecorder lets the test watch an SSE body while the handler is still
// writing it.
type streamRecorder struct {
	*httptest.ResponseRecorder
	mu   sync.Mutex
	body strings.Builder
}

func (r *streamRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.body.Write(p)
	return r.ResponseRecorder.Write(p)
}

func (r *streamRecorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.String()
}

func TestEventsHandler_Connect_StreamsEvents(t *testing.T) {
	hub := events.NewHub()
	go hub.Run()

	handler := NewEventsHandler(hub)
	app := newApp(http.MethodGet, "/events", handler.Connect)

	userID := uuid.New()
	matchID := uuid.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, testJWT, userID, "jugador@example.com"))
	rec := &streamRecorder{ResponseRecorder: httptest.NewRecorder()}

	done := make(chan struct{})
	go func() {
		app.ServeHTTP(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(events.MatchChanged, matchID, uuid.New())

	assert.Eventually(t, func() bool {
		return strings.Contains(rec.String(), matchID.String())
	}, time.Second, 10*time.Millisecond)
	assert.Contains(t, rec.String(), "connected")
	assert.Contains(t, rec.String(), string(events.MatchChanged))

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not return after the request ended")
	}

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestEventsHandler_Connect_RequiresAuth(t *testing.T) {
	hub := events.NewHub()
	handler := NewEventsHandler(hub)
	app := newApp(http.MethodGet, "/events", handler.Connect)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, hub.ClientCount())
}
