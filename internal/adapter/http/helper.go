package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"renthive-backend/internal/adapter/middleware"
	"renthive-backend/internal/domain/apperr"
	"renthive-backend/internal/domain/auth"
)

var errNoActor = errors.New("missing bearer token")

// statusOf maps an error class to its HTTP status.
func statusOf(err error) int {
	switch apperr.ClassOf(err) {
	case apperr.ErrValidation:
		return http.StatusBadRequest
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrForbidden:
		return http.StatusForbidden
	case apperr.ErrConflict:
		return http.StatusConflict
	case apperr.ErrPayment:
		return http.StatusPaymentRequired
	case apperr.ErrTransient:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// fail writes err as an ErrorResponse. Unclassified errors are logged and hidden.
func fail(c echo.Context, err error) error {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}

// bindValid binds and validates req. When it returns false the response is written.
func bindValid(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

func actorOf(c echo.Context) (auth.Actor, bool, error) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		return a, false, c.JSON(http.StatusUnauthorized, ErrorResponse{Error: errNoActor.Error()})
	}
	return a, true, nil
}

// pathParam returns a trimmed path param or writes a 400 naming it.
func pathParam(c echo.Context, name string) (string, bool, error) {
	v := strings.TrimSpace(c.Param(name))
	if v == "" {
		return "", false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing " + name + " path param"})
	}
	return v, true, nil
}
