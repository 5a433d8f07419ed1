package common

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTracker struct {
	mu       sync.Mutex
	sessions []string
	done     chan struct{}
}

func (r *recordingTracker) TrackSession(sessionId string, _ *http.Request) {
	r.mu.Lock()
	r.sessions = append(r.sessions, sessionId)
	r.mu.Unlock()
	close(r.done)
}

func TestJsonHandlerIssuesSession(t *testing.T) {
	trk := &recordingTracker{done: make(chan struct{})}
	var got string
	handler := JsonHandler(trk, func(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
		got = sessionId
		return enc.Encode(map[string]int{"rows": 2})
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "http://localhost:8080/api/rows", nil))
	<-trk.done

	_, err := uuid.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, []string{got}, trk.sessions)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"rows":2}`, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, got, cookies[0].Value)
	assert.Equal(t, "localhost", cookies[0].Domain)
}

func TestExistingSessionIsKept(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: id})
	rec := httptest.NewRecorder()

	assert.Equal(t, id, HandleSessionCookie(nil, rec, req))
	assert.Empty(t, rec.Result().Cookies())
}

func TestInvalidSessionIsReplaced(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "12345"})
	rec := httptest.NewRecorder()

	id := HandleSessionCookie(nil, rec, req)
	assert.NotEqual(t, "12345", id)
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestOptions(t *testing.T) {
	called := false
	handler := JsonHandler(nil, func(http.ResponseWriter, *http.Request, string, sonic.Encoder) error {
		called = true
		return nil
	})
	req := httptest.NewRequest(http.MethodOptions, "/api/rows", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
