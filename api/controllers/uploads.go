package controllers

import (
	"net/http"

	"github.com/shopmart-io/shopmart-backend/api/responses"
	uploadsvc "github.com/shopmart-io/shopmart-backend/internal/uploads"
	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
	"github.com/shopmart-io/shopmart-backend/pkg/logger"
)

// UploadImage accepts a multipart "image" part and stores it.
func UploadImage(svc uploadsvc.Service, logg *logger.Logger, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "upload service unavailable"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart payload"))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, `multipart part "image" is required`))
			return
		}
		defer file.Close()

		stored, err := svc.SaveImage(r.Context(), file, header.Size)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, stored)
	}
}
