package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
	"github.com/aussiebroadwan/accounts/internal/auth/service"
	"github.com/aussiebroadwan/accounts/pkg/authsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

type ChangePasswordHandler struct {
	UserService *service.UserService
}

// ServeHTTP changes the logged-in user's password.
//
//	@Summary		Change password
//	@Description	Requires the current password. Existing sessions stay valid.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	authsdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		204		"Password changed"
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"New password rejected"
//	@Failure		401		{object}	authsdk.ErrorResponse			"No session or wrong current password"
//	@Router			/v1/auth/password [post].
func (h *ChangePasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ChangePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p := domain.PrincipalFromContext(r.Context())
	if err := h.UserService.ChangePassword(r.Context(), p, req.OldPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

type ResetRequestHandler struct {
	ResetService *service.ResetService
}

// resetRequestedMessage is sent whether or not the email is registered.
const resetRequestedMessage = "An email with instructions to reset your password has been sent to you."

// ServeHTTP starts a password reset.
//
//	@Summary		Request password reset
//	@Description	Mails a reset link. The response is the same whether or not the email is registered.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ResetPasswordRequest	true	"Account email"
//	@Success		202		{object}	authsdk.MessageResponse			"Check your email"
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"Invalid email"
//	@Router			/v1/auth/reset-password [post].
func (h *ResetRequestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ResetPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// Only malformed input is reported; every other outcome gets the same
	// answer so the response never reveals whether the email is registered.
	err := h.ResetService.RequestReset(r.Context(), req.Email)
	switch {
	case err == nil, errors.Is(err, service.ErrUserNotFound):
	case errors.Is(err, service.ErrValidation):
		writeServiceError(w, r, err)
		return
	default:
		slogx.FromContext(r.Context()).Error("password reset request failed", slogx.Err(err))
	}

	httpx.WriteJSON(w, http.StatusAccepted, authsdk.MessageResponse{Message: resetRequestedMessage})
}

type ResetCompleteHandler struct {
	ResetService *service.ResetService
}

// ServeHTTP completes a password reset. It does not log the caller in.
//
//	@Summary		Complete password reset
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			token	path		string							true	"Reset token from the email"
//	@Param			request	body		authsdk.NewPasswordRequest		true	"New password"
//	@Success		200		{object}	authsdk.MessageResponse			"Password updated"
//	@Failure		400		{object}	authsdk.ErrorResponse			"Link invalid or expired, or password rejected"
//	@Router			/v1/auth/reset-password/{token} [post].
func (h *ResetCompleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.NewPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.ResetService.CompleteReset(r.Context(), r.PathValue("token"), req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "Your password has been updated."})
}
