package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/orgdot/pkg/errors"
	"github.com/matzehuels/orgdot/pkg/render"
)

type errorBody struct {
	Code        string              `json:"code"`
	Message     string              `json:"message"`
	Diagnostics []render.Diagnostic `json:"diagnostics,omitempty"`
}

// statusFor maps error codes to HTTP status codes.
var statusFor = map[errors.Code]int{
	errors.ErrCodeInvalidInput:        http.StatusBadRequest,
	errors.ErrCodeInvalidConfig:       http.StatusBadRequest,
	errors.ErrCodeInvalidFormat:       http.StatusBadRequest,
	errors.ErrCodeInvalidLayout:       http.StatusBadRequest,
	errors.ErrCodeInvalidKey:          http.StatusBadRequest,
	errors.ErrCodeInvalidOrganization: http.StatusUnprocessableEntity,
	errors.ErrCodeNotFound:            http.StatusNotFound,
	errors.ErrCodeDocumentNotFound:    http.StatusNotFound,
	errors.ErrCodeRenderFailed:        http.StatusBadGateway,
	errors.ErrCodeStorage:             http.StatusServiceUnavailable,
	errors.ErrCodeTimeout:             http.StatusGatewayTimeout,
	errors.ErrCodeUnsupported:         http.StatusNotImplemented,
	errors.ErrCodeInternal:            http.StatusInternalServerError,
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if rerr, ok := render.AsError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Code:        string(errors.ErrCodeRenderFailed),
			Message:     rerr.Error(),
			Diagnostics: rerr.Diagnostics,
		})
		return
	}

	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
			Code:    string(errors.ErrCodeInvalidInput),
			Message: "request body too large",
		})
		return
	}

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status, ok := statusFor[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorBody{Code: string(code), Message: errors.UserMessage(err)})
}
