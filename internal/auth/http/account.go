package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
	"github.com/aussiebroadwan/accounts/internal/auth/service"
	"github.com/aussiebroadwan/accounts/pkg/authsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

type ConfirmHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP follows a confirmation link for the logged-in user.
//
//	@Summary		Confirm account
//	@Description	Confirms the logged-in account with the token from the confirmation email.
//	@Description	Following the link again after confirming reports already_confirmed.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Param			token	path		string					true	"Confirmation token"
//	@Success		200		{object}	authsdk.ConfirmResponse	"confirmed or already_confirmed"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Link invalid or expired"
//	@Failure		401		{object}	authsdk.ErrorResponse	"No session"
//	@Router			/v1/auth/confirm/{token} [get].
func (h *ConfirmHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := domain.PrincipalFromContext(r.Context())

	outcome, err := h.AccountService.Confirm(r.Context(), p, r.PathValue("token"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	msg := "You have confirmed your account. Thanks!"
	if outcome == service.OutcomeAlreadyConfirmed {
		msg = "Your account is already confirmed."
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.ConfirmResponse{
		Outcome: string(outcome),
		Message: msg,
	})
}

type ResendConfirmationHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP mails a new confirmation link.
//
//	@Summary		Resend confirmation email
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		202	{object}	authsdk.MessageResponse	"Email queued"
//	@Failure		401	{object}	authsdk.ErrorResponse	"No session"
//	@Router			/v1/auth/confirm [post].
func (h *ResendConfirmationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := domain.PrincipalFromContext(r.Context())
	if err := h.AccountService.ResendConfirmation(r.Context(), p); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusAccepted, authsdk.MessageResponse{
		Message: "A new confirmation email has been sent to you by email.",
	})
}

type UnconfirmedHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP reports whether the caller still has to confirm.
//
//	@Summary		Confirmation status
//	@Description	Anonymous and confirmed callers are pointed back to "/"; unconfirmed callers should be asked to check their email.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authsdk.UnconfirmedResponse	"anonymous, confirmed or unconfirmed"
//	@Router			/v1/auth/unconfirmed [get].
func (h *UnconfirmedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := h.AccountService.Unconfirmed(domain.PrincipalFromContext(r.Context()))

	resp := authsdk.UnconfirmedResponse{Status: string(status)}
	if status != service.StatusUnconfirmed {
		resp.Redirect = "/"
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
