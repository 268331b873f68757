package controllers

import (
	"net/http"

	"github.com/shopmart-io/shopmart-backend/api/responses"
	"github.com/shopmart-io/shopmart-backend/api/validators"
	usersvc "github.com/shopmart-io/shopmart-backend/internal/users"
	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
	"github.com/shopmart-io/shopmart-backend/pkg/logger"
	"github.com/shopmart-io/shopmart-backend/pkg/types"
)

type updateProfileRequest struct {
	Name      *string            `json:"name,omitempty" validate:"omitempty,max=120"`
	Phone     *string            `json:"phone,omitempty" validate:"omitempty,max=32"`
	Avatar    *string            `json:"avatar,omitempty" validate:"omitempty,max=500"`
	Addresses *types.AddressList `json:"addresses,omitempty"`
}

// GetProfile returns the authenticated user's profile.
func GetProfile(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// UpdateProfile mutates the authenticated user's profile fields.
func UpdateProfile(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProfileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), userID, usersvc.UpdateProfileInput{
			Name:      payload.Name,
			Phone:     payload.Phone,
			Avatar:    payload.Avatar,
			Addresses: payload.Addresses,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}
