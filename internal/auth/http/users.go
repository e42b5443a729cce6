package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
	"github.com/aussiebroadwan/accounts/internal/auth/service"
	"github.com/aussiebroadwan/accounts/pkg/authsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

type MeHandler struct{}

// ServeHTTP returns the logged-in user.
//
//	@Summary		Current user
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserResponse	"The logged-in account"
//	@Failure		401	{object}	authsdk.ErrorResponse	"No session"
//	@Failure		403	{object}	authsdk.ErrorResponse	"Account not confirmed"
//	@Router			/v1/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := domain.PrincipalFromContext(r.Context()).User()
	if !ok {
		authsdk.ErrAuthenticationRequired.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

type ProfileHandler struct {
	UserService *service.UserService
}

// ServeHTTP returns a public profile.
//
//	@Summary		User profile
//	@Tags			Users
//	@Produce		json
//	@Param			username	path		string					true	"Username"
//	@Success		200			{object}	authsdk.ProfileResponse	"Public profile"
//	@Failure		403			{object}	authsdk.ErrorResponse	"Caller's account not confirmed"
//	@Failure		404			{object}	authsdk.ErrorResponse	"No such user"
//	@Router			/v1/users/{username} [get].
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.FindByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProfileResponse(user))
}

type UpdateProfileHandler struct {
	UserService *service.UserService
}

// ServeHTTP edits the logged-in user's profile.
//
//	@Summary		Edit profile
//	@Description	Partial update of username, location and about_me. Omitted fields are unchanged.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.UpdateProfileRequest	true	"Fields to change"
//	@Success		200		{object}	authsdk.ProfileResponse			"Updated public profile"
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"Invalid fields"
//	@Failure		401		{object}	authsdk.ErrorResponse			"No session"
//	@Failure		409		{object}	authsdk.ErrorResponse			"Username taken"
//	@Router			/v1/auth/profile [patch].
func (h *UpdateProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p := domain.PrincipalFromContext(r.Context())
	user, err := h.UserService.UpdateProfile(r.Context(), p.UserID(), domain.ProfileUpdate{
		Username: req.Username,
		Location: req.Location,
		AboutMe:  req.AboutMe,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/v1/users/"+user.Username)
	httpx.WriteJSON(w, http.StatusOK, toProfileResponse(user))
}
