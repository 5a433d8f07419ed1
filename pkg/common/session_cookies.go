package common

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const sessionCookieName = "sid"

func generateSessionId() string {
	return uuid.NewString()
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, sessionId string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionId,
		Domain:   strings.TrimPrefix(hostname(r.Host), "."),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		MaxAge:   30 * 24 * 3600,
		Path:     "/",
	})
}

func hostname(host string) string {
	if idx := strings.LastIndex(host, ":"); idx > 0 && !strings.HasSuffix(host, "]") {
		return host[:idx]
	}
	return host
}

// HandleSessionCookie returns the visitor's session id, issuing a new one
// when the cookie is missing or not a valid uuid.
func HandleSessionCookie(tracking SessionTracker, w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(sessionCookieName)
	if err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	sessionId := generateSessionId()
	if tracking != nil {
		go tracking.TrackSession(sessionId, r)
	}
	setSessionCookie(w, r, sessionId)
	return sessionId
}
