package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/kamiour/backoffice/internal/application/ports"
)

// SessionCookie is the name of the session cookie issued at login.
const SessionCookie = "session_id"

// SessionValidator resolves the session cookie against the session store and
// rejects requests without a logged-in session.
type SessionValidator struct {
	sessions ports.SessionStore
}

// NewSessionValidator builds the middleware.
func NewSessionValidator(sessions ports.SessionStore) *SessionValidator {
	return &SessionValidator{sessions: sessions}
}

// Handler enforces a valid logged-in session and puts it in the context
// (see SessionFromContext).
func (m *SessionValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			writeErr(w, http.StatusUnauthorized, "unauthorized", "not authenticated")
			return
		}
		session, err := m.sessions.Get(r.Context(), cookie.Value)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		if session == nil || !session.LoggedIn {
			writeErr(w, http.StatusUnauthorized, "unauthorized", "not authenticated")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// writeErr mirrors the handlers' error envelope so middleware rejections
// carry the same stable code field.
func writeErr(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}
