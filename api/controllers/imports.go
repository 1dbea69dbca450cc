package controllers

import (
	"net/http"

	"github.com/weilintw/farmgate-backend/api/responses"
	"github.com/weilintw/farmgate-backend/internal/receiving"
	"github.com/weilintw/farmgate-backend/pkg/config"
	pkgerrors "github.com/weilintw/farmgate-backend/pkg/errors"
	"github.com/weilintw/farmgate-backend/pkg/logger"
)

// DeliveriesImport accepts a multipart spreadsheet upload under the "file"
// field and runs it through the import pipeline. An unreadable file returns a
// PARSE_FAILURE and creates nothing.
func DeliveriesImport(svc receiving.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, cfg.Import.MaxUploadBytes)

		if err := r.ParseMultipartForm(cfg.Import.MaxUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart upload"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field is required"))
			return
		}
		defer file.Close()

		created, err := svc.Import(r.Context(), file, header.Filename)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}
