package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"inkwell-server/notify"
	"inkwell-server/shared"
)

func writeApiError(w http.ResponseWriter, apiErr shared.ApiError) {
	bytes, err := json.Marshal(apiErr)
	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		// If marshalling fails, fall back to a simpler error message
		http.Error(w, "Error marshalling response", http.StatusInternalServerError)
		return
	}

	log.Printf("API Error: %v\n", apiErr.Msg)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)

	_, writeErr := w.Write(bytes)
	if writeErr != nil {
		log.Printf("Error writing response: %v\n", writeErr)
	}
}

// serverError reports an unexpected failure. Timeouts surface as transient
// store errors the client may retry; everything else is a plain 500. In
// production the response carries no internal detail.
func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	log.Printf("%s: %v\n", msg, err)
	notify.NotifyErr(notify.SeverityError, msg, err)

	if goEnv == "development" {
		spew.Dump(r.Method, r.URL.String())
	}

	if errors.Is(err, context.DeadlineExceeded) {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeTransientStore,
			Status: http.StatusServiceUnavailable,
			Msg:    msg,
		})
		return
	}

	if goEnv == "production" {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeOther,
			Status: http.StatusInternalServerError,
			Msg:    "An unexpected error occurred",
		})
		return
	}

	http.Error(w, msg+": "+err.Error(), http.StatusInternalServerError)
}

func writeJson(w http.ResponseWriter, v any) {
	writeJsonStatus(w, http.StatusOK, v)
}

func writeJsonStatus(w http.ResponseWriter, status int, v any) {
	bytes, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

// readJson decodes and validates a request body. Returns false after writing
// a validation error response.
func readJson(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeValidation,
			Status: http.StatusBadRequest,
			Msg:    "Invalid request body",
		})
		return false
	}

	if err := validate.Struct(req); err != nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeValidation,
			Status: http.StatusBadRequest,
			Msg:    "Invalid request: " + err.Error(),
		})
		return false
	}

	return true
}
