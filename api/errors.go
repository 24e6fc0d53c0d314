package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/royalkeys/royalkeys/backoffice"
	"github.com/royalkeys/royalkeys/catalog"
	"github.com/royalkeys/royalkeys/checkout"
	"github.com/royalkeys/royalkeys/router"
	"github.com/royalkeys/royalkeys/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func mapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, router.ErrUnknownProduct),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, router.ErrUnknownCategory),
		errors.Is(err, router.ErrUnknownInfoPage),
		errors.Is(err, checkout.ErrInvalidDetails):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, router.ErrNoSelection),
		errors.Is(err, router.ErrSelectionChanged):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, backoffice.ErrInvalidCredentials),
		errors.Is(err, backoffice.ErrNotAllowed):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, backoffice.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
