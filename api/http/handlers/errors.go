package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/elecmate/cvbuilder/api/http/presenter"
	"github.com/elecmate/cvbuilder/pkg/cv"
	"github.com/elecmate/cvbuilder/pkg/cvsync"
	"github.com/elecmate/cvbuilder/pkg/elecid"
	"github.com/elecmate/cvbuilder/pkg/security/jwt"
)

var (
	errNoUser = errors.New("cannot resolve user")
	errBadID  = errors.New("invalid id")
)

// currentUser reads the id the JWT middleware put into Locals.
func currentUser(c *fiber.Ctx) (uuid.UUID, error) {
	s, _ := c.Locals(jwt.LocalUserID).(string)
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, errNoUser
	}
	return id, nil
}

// userAndCV resolves the caller and the :id path parameter.
func userAndCV(c *fiber.Ctx) (userID, cvID uuid.UUID, err error) {
	userID, err = currentUser(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	cvID, err = uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, errBadID
	}
	return userID, cvID, nil
}

// writeError maps domain errors onto HTTP statuses and stable error codes.
func writeError(c *fiber.Ctx, err error) error {
	var validation cv.ErrValidation
	var profileValidation elecid.ErrValidation
	var persistence *cv.PersistenceError
	switch {
	case errors.As(err, &validation), errors.As(err, &profileValidation):
		return presenter.ErrorCode(c, http.StatusBadRequest, "validation", err.Error())
	case errors.Is(err, errBadID):
		return presenter.ErrorCode(c, http.StatusBadRequest, "bad_id", err.Error())
	case errors.Is(err, errNoUser):
		return presenter.ErrorCode(c, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, cv.ErrNotFound):
		return presenter.ErrorCode(c, http.StatusNotFound, "not_found", "cv not found")
	case errors.Is(err, cv.ErrVersionConflict):
		return presenter.ErrorCode(c, http.StatusConflict, "version_conflict", err.Error())
	case errors.Is(err, cvsync.ErrNoProfile):
		return presenter.ErrorCode(c, http.StatusUnprocessableEntity, "no_profile", err.Error())
	case errors.Is(err, cvsync.ErrNoData):
		return presenter.ErrorCode(c, http.StatusUnprocessableEntity, "no_data", err.Error())
	case errors.As(err, &persistence):
		slog.ErrorContext(c.UserContext(), "persistence failure", "path", c.Path(), "err", err)
		return presenter.ErrorCode(c, http.StatusInternalServerError, "persistence", persistence.Message)
	default:
		slog.ErrorContext(c.UserContext(), "unhandled error", "path", c.Path(), "err", err)
		return presenter.Error(c, http.StatusInternalServerError, "internal error")
	}
}
