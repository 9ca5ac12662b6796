package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kamiour/backoffice/internal/application/auth"
	"github.com/kamiour/backoffice/internal/domain"
	domerrors "github.com/kamiour/backoffice/internal/domain/errors"
	"github.com/kamiour/backoffice/internal/infrastructure/http/middleware"
)

// AuthHandler exposes the credential and session lifecycle over HTTP.
type AuthHandler struct {
	signup        *auth.Signup
	login         *auth.Login
	logout        *auth.Logout
	requestReset  *auth.RequestReset
	validateReset *auth.ValidateReset
	resetPassword *auth.ResetPassword
	sessionTTL    time.Duration
	storeTimeout  time.Duration
	cookieSecure  bool
	validate      *validator.Validate
	log           zerolog.Logger
}

// DefaultStoreTimeout bounds store-facing work per request. A store that
// exceeds it surfaces as PersistenceError and a 500 on the wire.
const DefaultStoreTimeout = 5 * time.Second

// NewAuthHandler wires the auth use cases. sessionTTL bounds the session
// cookie lifetime, storeTimeout bounds store calls per request, and
// cookieSecure should be true outside development.
func NewAuthHandler(signup *auth.Signup, login *auth.Login, logout *auth.Logout, requestReset *auth.RequestReset, validateReset *auth.ValidateReset, resetPassword *auth.ResetPassword, sessionTTL, storeTimeout time.Duration, cookieSecure bool, log zerolog.Logger) *AuthHandler {
	if storeTimeout <= 0 {
		storeTimeout = DefaultStoreTimeout
	}
	return &AuthHandler{
		signup:        signup,
		login:         login,
		logout:        logout,
		requestReset:  requestReset,
		validateReset: validateReset,
		resetPassword: resetPassword,
		sessionTTL:    sessionTTL,
		storeTimeout:  storeTimeout,
		cookieSecure:  cookieSecure,
		validate:      validator.New(),
		log:           log,
	}
}

func (h *AuthHandler) storeCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.storeTimeout)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid email or password length")
		return
	}
	ctx, cancel := h.storeCtx(r)
	defer cancel()
	result, err := h.signup.Execute(ctx, auth.SignupInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.signup", "", false, err.Error())
		middleware.RecordAuthAttempt("signup", false)
		if errors.Is(err, domerrors.ErrUserExists) {
			writeErr(w, http.StatusConflict, ErrCodeConflict, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("signup failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditLog(h.log, r, "user.signup", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("signup", true)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":         result.User.ID.String(),
		"email":      result.User.Email,
		"created_at": result.User.CreatedAt,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid email or password length")
		return
	}
	ctx, cancel := h.storeCtx(r)
	defer cancel()
	result, err := h.login.Execute(ctx, auth.LoginInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		if errors.Is(err, domerrors.ErrInvalidCredentials) {
			writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditLog(h.log, r, "user.login", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", true)
	if result.SessionID != "" {
		h.setSessionCookie(w, result.SessionID)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": map[string]interface{}{
			"id":    result.User.ID.String(),
			"email": result.User.Email,
		},
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := ""
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		sessionID = cookie.Value
	}
	ctx, cancel := h.storeCtx(r)
	defer cancel()
	h.logout.Execute(ctx, auth.LogoutInput{SessionID: sessionID})
	h.clearSessionCookie(w)
	AuditLog(h.log, r, "user.logout", "", true, "")
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email,max=254"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	if email == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid email")
		return
	}
	ctx, cancel := h.storeCtx(r)
	defer cancel()
	_, err := h.requestReset.Execute(ctx, auth.RequestResetInput{Email: email})
	if err != nil {
		AuditLog(h.log, r, "user.forgot_password", "", false, err.Error())
		middleware.RecordAuthAttempt("forgot_password", false)
		if errors.Is(err, domerrors.ErrNotFound) {
			writeErr(w, http.StatusNotFound, ErrCodeNotFound, "No account with that email found")
			return
		}
		h.log.Error().Err(err).Msg("forgot password failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditLog(h.log, r, "user.forgot_password", "", true, "")
	middleware.RecordAuthAttempt("forgot_password", true)
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset_email_sent"})
}

func (h *AuthHandler) ValidateReset(w http.ResponseWriter, r *http.Request) {
	token := pathToken(r)
	if token == "" {
		writeErr(w, http.StatusBadRequest, "", "token required")
		return
	}
	ctx, cancel := h.storeCtx(r)
	defer cancel()
	result, err := h.validateReset.Execute(ctx, auth.ValidateResetInput{Token: token})
	if err != nil {
		if errors.Is(err, domerrors.ErrNotFound) {
			writeErr(w, http.StatusNotFound, ErrCodeNotFound, "invalid or expired reset token")
			return
		}
		h.log.Error().Err(err).Msg("validate reset failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"user_id": result.UserID.String(),
		"token":   token,
	})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID   string `json:"user_id" validate:"required,uuid"`
		Token    string `json:"token" validate:"required,len=64,hexadecimal"`
		Password string `json:"password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	password := SanitizePassword(body.Password)
	if password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid password length")
		return
	}
	userID, err := uuid.Parse(body.UserID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid user id")
		return
	}
	ctx, cancel := h.storeCtx(r)
	defer cancel()
	_, err = h.resetPassword.Execute(ctx, auth.ResetPasswordInput{
		UserID:      domain.NewUserID(userID),
		Token:       body.Token,
		NewPassword: password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.reset_password", body.UserID, false, err.Error())
		middleware.RecordAuthAttempt("reset_password", false)
		if errors.Is(err, domerrors.ErrNotFound) {
			writeErr(w, http.StatusNotFound, ErrCodeNotFound, "invalid or expired reset token")
			return
		}
		h.log.Error().Err(err).Msg("reset password failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditLog(h.log, r, "user.reset_password", body.UserID, true, "")
	middleware.RecordAuthAttempt("reset_password", true)
	writeJSON(w, http.StatusOK, map[string]string{"status": "password_reset"})
}

func pathToken(r *http.Request) string {
	return chi.URLParam(r, "token")
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
