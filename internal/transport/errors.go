package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/3ricLu/Symptomfy-sub001/pkg/errors"
)

// errorBody covers the two error shapes the backend produces: the standard
// envelope and a bare top-level message.
type errorBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an AppError, preserving the server-supplied message when one is
// present. The response body is fully consumed and closed. Call only when
// resp.StatusCode indicates an error.
func ParseResponseError(resp *http.Response, operation string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", operation, resp.StatusCode, err)
	}

	var parsed errorBody
	if json.Unmarshal(bodyBytes, &parsed) == nil {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return mapStatusError(resp.StatusCode, parsed.Error.Code, parsed.Error.Message)
		}
		if parsed.Message != "" {
			return mapStatusError(resp.StatusCode, "", parsed.Message)
		}
	}

	// Unstructured error body.
	return mapStatusError(resp.StatusCode, "", fmt.Sprintf("%s returned status %d", operation, resp.StatusCode))
}

// mapStatusError builds an AppError carrying the original status, code, and
// message so callers can classify by status and still surface the server's
// wording.
func mapStatusError(status int, code, message string) error {
	appErr := &apperrors.AppError{
		Code:    code,
		Message: message,
		Status:  status,
	}

	switch status {
	case http.StatusUnauthorized:
		appErr.Err = apperrors.ErrUnauthorized
	case http.StatusForbidden:
		appErr.Err = apperrors.ErrForbidden
	case http.StatusNotFound:
		appErr.Err = apperrors.ErrNotFound
	case http.StatusConflict:
		appErr.Err = apperrors.ErrAlreadyExists
	case http.StatusBadRequest:
		appErr.Err = apperrors.ErrInvalidInput
	case http.StatusServiceUnavailable:
		appErr.Err = apperrors.ErrServiceUnavail
	default:
		if status >= 500 {
			appErr.Err = apperrors.ErrInternal
		}
	}

	if appErr.Code == "" {
		appErr.Code = http.StatusText(status)
	}

	return appErr
}
