package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dhamma-seva/registration-api/internal/resources"
)

// asStatusError passes through errors that already carry an HTTP status
// (raised inside transactions) and wraps anything else as a 500.
func asStatusError(err error, fallback string) error {
	var se huma.StatusError
	if errors.As(err, &se) {
		return err
	}
	return huma.Error500InternalServerError(fallback + ": " + err.Error())
}

func isUniqueViolationOn(err error, column string) bool {
	return resources.IsUniqueViolation(err) && resources.ConflictColumn(err) == column
}
