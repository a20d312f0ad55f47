package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dimitrije/futbol-api/internal/apperr"
	"github.com/dimitrije/futbol-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidInput:
		return http.StatusBadRequest
	case apperr.KindGuardViolation, apperr.KindCapacityExceeded, apperr.KindUniquenessConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders a rule rejection with its code and reason. Anything
// else is logged and hidden behind a generic 500.
func writeError(c *drift.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		_ = c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		return
	}

	_ = c.JSON(statusFor(appErr.Kind), dto.ErrorResponse{
		Error: appErr.Message,
		Code:  appErr.Code,
		Kind:  string(appErr.Kind),
	})
}
