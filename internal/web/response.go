package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/inkhive/pkg/apiclient"
	"github.com/dmitrymomot/inkhive/pkg/logger"
	"github.com/dmitrymomot/inkhive/pkg/session"
	"github.com/dmitrymomot/inkhive/pkg/validator"
)

// Response is the envelope of every gateway response.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// Error codes.
const (
	CodeValidation   = "validation_error"
	CodeBadRequest   = "bad_request"
	CodeAuthFailed   = "auth_failed"
	CodeUnauthorized = "unauthenticated"
	CodeUpstream     = "upstream_error"
	CodeUnavailable  = "upstream_unavailable"
	CodeNotReady     = "not_ready"
	CodeRateLimited  = "rate_limited"
	CodeInternal     = "internal_error"
)

var errBadRequest = errors.New("web.bad_request")

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any, meta map[string]any) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, Response{Data: data, Meta: meta})
}

// errorDetail classifies err into a status and error body.
func errorDetail(err error) (int, *ErrorDetail) {
	if ve := validator.ExtractValidationErrors(err); ve != nil {
		return http.StatusUnprocessableEntity, &ErrorDetail{
			Code:    CodeValidation,
			Message: "validation failed",
			Details: ve.Map(),
		}
	}

	var authErr *session.AuthError
	if errors.As(err, &authErr) {
		return http.StatusUnauthorized, &ErrorDetail{Code: CodeAuthFailed, Message: authErr.Message}
	}

	if session.IsAbsent(err) {
		return http.StatusUnauthorized, &ErrorDetail{Code: CodeUnauthorized, Message: "not signed in"}
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsTransport() {
			return http.StatusBadGateway, &ErrorDetail{Code: CodeUnavailable, Message: apiErr.Message}
		}
		status := apiErr.Status
		if status < 400 {
			// a 2xx the gateway could not decode
			status = http.StatusBadGateway
		}
		return status, &ErrorDetail{Code: CodeUpstream, Message: apiErr.Message}
	}

	if errors.Is(err, errBadRequest) {
		return http.StatusBadRequest, &ErrorDetail{Code: CodeBadRequest, Message: err.Error()}
	}

	return http.StatusInternalServerError, &ErrorDetail{Code: CodeInternal, Message: http.StatusText(http.StatusInternalServerError)}
}

func (g *Gateway) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := errorDetail(err)

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	g.logger.Log(r.Context(), level, "request failed",
		slog.String("code", detail.Code),
		logger.HTTPRequest(r.Method, r.URL.Path, status),
		logger.Error(err),
	)

	writeJSON(w, status, Response{Error: detail})
}
