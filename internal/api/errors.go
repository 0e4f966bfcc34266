package api

import (
	"context"
	"errors"
	"io/fs"
	"net/http"

	"github.com/banshee-data/ballistics/internal/db"
	"github.com/banshee-data/ballistics/internal/drag"
	"github.com/banshee-data/ballistics/internal/trajectory"
	"github.com/banshee-data/ballistics/internal/zeroing"
)

// statusFor maps engine errors onto HTTP statuses: bad input is 400, a
// well formed shot with no solution is 422.
func statusFor(err error) int {
	var zerr *zeroing.Error
	switch {
	case errors.Is(err, trajectory.ErrConfiguration),
		errors.Is(err, trajectory.ErrInvalidSample),
		errors.Is(err, zeroing.ErrInvalidTarget),
		errors.Is(err, drag.ErrUnknownTable),
		errors.Is(err, drag.ErrInvalidTable),
		errors.Is(err, fs.ErrNotExist):
		return http.StatusBadRequest
	case errors.As(err, &zerr), errors.Is(err, drag.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
