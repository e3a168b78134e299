package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minidocs/minidocs/internal/auth"
	"github.com/minidocs/minidocs/internal/documents"
)

// ErrorResponse is the body echo renders for handler errors.
type ErrorResponse struct {
	Message string `json:"message"`
}

func requireUserID(c echo.Context) (string, error) {
	return auth.UserIDFromContext(c)
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func documentError(err error) error {
	if errors.Is(err, documents.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
