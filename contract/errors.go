package contract

import (
	"errors"
	"net/http"

	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// Category classifies contract failures for consistent handling by callers.
type Category string

const (
	CategoryNone          Category = ""
	CategoryAuthorization Category = "authorization"
	CategoryStateConflict Category = "state_conflict"
	CategoryInvalidInput  Category = "invalid_input"
	CategoryNotFound      Category = "not_found"
	CategoryInternal      Category = "internal"
)

// HTTPStatus maps an error to an HTTP status code using the status hint of
// its message key.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ffe i18n.FFError
	if !errors.As(err, &ffe) {
		return http.StatusInternalServerError
	}
	return ffe.HTTPStatus()
}

// ErrorCategory classifies err. A nil error has no category.
func ErrorCategory(err error) Category {
	if err == nil {
		return CategoryNone
	}
	switch HTTPStatus(err) {
	case http.StatusForbidden:
		return CategoryAuthorization
	case http.StatusConflict:
		return CategoryStateConflict
	case http.StatusBadRequest:
		return CategoryInvalidInput
	case http.StatusNotFound:
		return CategoryNotFound
	default:
		return CategoryInternal
	}
}

// outcome is the metrics label for a finished call.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(ErrorCategory(err))
}
