package http

import (
	"net/url"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
	"github.com/aussiebroadwan/accounts/pkg/authsdk"
)

func toUserResponse(u domain.User) authsdk.UserResponse {
	return authsdk.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		Confirmed:   u.Confirmed,
		Location:    u.Location,
		AboutMe:     u.AboutMe,
		MemberSince: u.CreatedAt,
		LastSeen:    u.LastSeen,
	}
}

func toProfileResponse(u domain.User) authsdk.ProfileResponse {
	return authsdk.ProfileResponse{
		Username:    u.Username,
		Location:    u.Location,
		AboutMe:     u.AboutMe,
		MemberSince: u.CreatedAt,
		LastSeen:    u.LastSeen,
		Href:        "/v1/users/" + url.PathEscape(u.Username),
	}
}
