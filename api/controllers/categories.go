package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/shopmart-io/shopmart-backend/api/responses"
	"github.com/shopmart-io/shopmart-backend/api/validators"
	categorysvc "github.com/shopmart-io/shopmart-backend/internal/categories"
	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
	"github.com/shopmart-io/shopmart-backend/pkg/logger"
)

// ListCategories serves the active category tree, parents first.
func ListCategories(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable"))
			return
		}

		items, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// GetCategory serves a single category.
func GetCategory(svc categorysvc.Service, logg *logger.Logger, includeInactive bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable"))
			return
		}

		id, err := pathUUID(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.GetCategory(r.Context(), id, includeInactive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, category)
	}
}

type createCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Image       *string `json:"image,omitempty" validate:"omitempty,max=500"`
	Parent      *string `json:"parent,omitempty" validate:"omitempty,uuid"`
}

// CreateCategory handles admin category creation.
func CreateCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable"))
			return
		}

		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := categorysvc.CreateCategoryInput{
			Name:        payload.Name,
			Description: payload.Description,
			Image:       payload.Image,
		}
		if payload.Parent != nil {
			parentID, err := uuid.Parse(*payload.Parent)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid parent"))
				return
			}
			input.ParentID = &parentID
		}

		category, err := svc.CreateCategory(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

type updateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Image       *string `json:"image,omitempty" validate:"omitempty,max=500"`
	Parent      *string `json:"parent,omitempty" validate:"omitempty,uuid"`
	ClearParent bool    `json:"clear_parent,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// UpdateCategory handles admin category mutation, including re-parenting.
func UpdateCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable"))
			return
		}

		id, err := pathUUID(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := categorysvc.UpdateCategoryInput{
			Name:        payload.Name,
			Description: payload.Description,
			Image:       payload.Image,
			ClearParent: payload.ClearParent,
			IsActive:    payload.IsActive,
		}
		if payload.Parent != nil {
			parentID, err := uuid.Parse(*payload.Parent)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid parent"))
				return
			}
			input.ParentID = &parentID
		}

		category, err := svc.UpdateCategory(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, category)
	}
}

// DeleteCategory handles admin category soft deletion.
func DeleteCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable"))
			return
		}

		id, err := pathUUID(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
