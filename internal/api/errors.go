package api

import (
	"errors"
	"net/http"

	ierr "github.com/itrgo/tax-estimator/internal/errors"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine code, the caller-facing message and any
// field-level details
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		s.logger.Errorf("%s %s: %+v", c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		s.logger.Errorf("failed to write error response: %v", err)
	}
}

// errorResponse maps an error onto a status and body. Errors raised by echo
// itself (unknown route, body too large) keep their status.
func errorResponse(err error) (int, ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			message = m
		}
		return he.Code, ErrorResponse{Error: ErrorDetail{Code: httpCode(he.Code), Message: message}}
	}

	status := ierr.HTTPStatusFromErr(err)
	detail := ErrorDetail{
		Code:    ierr.Code(err),
		Message: ierr.DisplayMessage(err, "An unexpected error occurred"),
	}
	if status < http.StatusInternalServerError {
		if details := ierr.Details(err); len(details) > 0 {
			detail.Details = details
		}
	}
	return status, ErrorResponse{Error: detail}
}

func httpCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return ierr.ErrCodeNotFound
	case http.StatusUnauthorized:
		return ierr.ErrCodeUnauthorized
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return ierr.ErrCodeInvalidInput
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	default:
		return ierr.ErrCodeSystemError
	}
}
