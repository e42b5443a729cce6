package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
	"github.com/aussiebroadwan/accounts/internal/auth/service"
	"github.com/aussiebroadwan/accounts/pkg/authsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

type RegisterHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP creates an unconfirmed account and mails a confirmation link.
//
//	@Summary		Register a new account
//	@Description	Creates an unconfirmed account and sends a confirmation email. The caller is not logged in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest			true	"Registration details"
//	@Success		201		{object}	authsdk.UserResponse			"Account created"
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"Invalid fields"
//	@Failure		409		{object}	authsdk.ErrorResponse			"Email or username taken"
//	@Failure		500		{object}	authsdk.ErrorResponse			"Internal server error"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.AccountService.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/v1/me")
	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

type LoginHandler struct {
	SessionService *service.SessionService
	Cookie         httpx.CookieOptions
}

// ServeHTTP exchanges credentials for a session.
//
//	@Summary		Log in
//	@Description	Verifies email and password and starts a session. The session token is returned and set as the "session" cookie.
//	@Description	With remember_me the cookie is persistent and the session lives longer.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			next	query		string						false	"Local path to continue to after login"
//	@Param			request	body		authsdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	authsdk.LoginResponse		"Session established"
//	@Failure		400		{object}	authsdk.ErrorResponse		"Malformed request"
//	@Failure		401		{object}	authsdk.ErrorResponse		"Invalid email or password"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		authsdk.WriteValidationError(w, errs)
		return
	}

	sess, err := h.SessionService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Remember: req.Remember,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, _ := sess.Principal.User()
	httpx.SetSessionCookie(w, h.Cookie, sess.Token, sess.ExpiresAt, sess.Persistent)
	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		SessionToken: sess.Token,
		ExpiresAt:    sess.ExpiresAt,
		Persistent:   sess.Persistent,
		Next:         httpx.LocalRedirect(r.URL.Query().Get("next"), "/"),
		User:         toUserResponse(user),
	})
}

type LogoutHandler struct {
	SessionService *service.SessionService
	Cookie         httpx.CookieOptions
}

// ServeHTTP ends the session. It always succeeds.
//
//	@Summary		Log out
//	@Description	Clears the session cookie. Safe to call without a session.
//	@Tags			Auth
//	@Success		204	"Logged out"
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.SessionService.Logout(r.Context(), domain.PrincipalFromContext(r.Context()))
	httpx.ClearSessionCookie(w, h.Cookie)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
