package http

import (
	"errors"
	"net/http"

	"uxpilot/internal/domain"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// NotFound response
	NotFound = Status{Code: http.StatusNotFound, Message: []string{"Sorry, Not found"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
)

// ResponseBody struct - Generic HTTP response wrapper for the /v1/api group
type ResponseBody struct {
	Status Status      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

type (
	// ErrorResponse struct - Wire shape of the core pipeline endpoints on
	// failure, matching {"error": "..."}
	ErrorResponse struct {
		Error string `json:"error"`
	}

	// UploadResponse struct - Wire shape of POST /upload on success
	UploadResponse struct {
		MediaID string `json:"mediaId"`
	}

	// MediaListResponse struct - Wire shape of GET /media/:mediaId on success
	MediaListResponse struct {
		Images []string `json:"images"`
	}
)

// errorStatusCode maps a domain error onto its HTTP status code.
func errorStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidMediaID),
		errors.Is(err, domain.ErrUnsupportedMedia),
		errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrMissingAPIKey):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrMediaNotFound),
		errors.Is(err, domain.ErrScriptNotFound),
		errors.Is(err, domain.ErrResultNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the client-facing message for an error. Internal
// failures get a generic message; their detail stays in the log.
func errorMessage(err error) string {
	if errorStatusCode(err) == http.StatusInternalServerError {
		return "An error occurred during the UX test"
	}
	return err.Error()
}
