package session

import (
	"context"
	ds "formcaptcha/internal/core/domain/session"
	"net/http"
	"time"
)

type contextSessionID string

const (
	CONTEXT_SESSION_ID_KEY = contextSessionID("sessionID")
	SESSION_ID_HEADER      = "X-Session-ID"
	SESSION_ID_MAX_LEN     = 128
)

type Middleware struct {
	cookieName  string
	cookieTTL   time.Duration
	isSecure    bool
	idGenerator ds.IDGenerator
}

func NewMiddleware(
	cookieName string,
	cookieTTL time.Duration,
	isSecure bool,
	idGenerator ds.IDGenerator,
) *Middleware {
	return &Middleware{
		cookieName:  cookieName,
		cookieTTL:   cookieTTL,
		isSecure:    isSecure,
		idGenerator: idGenerator,
	}
}

func (m *Middleware) parseID(r *http.Request) (id ds.ID, ok bool) {
	raw := ""
	if cookie, err := r.Cookie(m.cookieName); err == nil {
		raw = cookie.Value
	}
	if raw == "" {
		raw = r.Header.Get(SESSION_ID_HEADER)
	}
	if raw == "" || len(raw) > SESSION_ID_MAX_LEN {
		return id, false
	}
	return ds.ID(raw), true
}

// SetSessionIDToContext starts a new session when the request does not carry one.
func (m *Middleware) SetSessionIDToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := m.parseID(r)
		if !ok {
			id = m.idGenerator.GenerateID()
			http.SetCookie(w, &http.Cookie{
				Name:     m.cookieName,
				Value:    string(id),
				Path:     "/",
				MaxAge:   int(m.cookieTTL.Seconds()),
				HttpOnly: true,
				Secure:   m.isSecure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), CONTEXT_SESSION_ID_KEY, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func FromContext(ctx context.Context) ds.ID {
	id, _ := ctx.Value(CONTEXT_SESSION_ID_KEY).(ds.ID)
	return id
}
