package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mateen/socialnet/internal/middleware"
)

// principal pulls the authenticated user out of the request context.
// Routes behind JWTAuth always have one; the error path only fires if
// a handler is mounted without the middleware.
func principal(c echo.Context) (middleware.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return middleware.Principal{}, echo.ErrUnauthorized
	}
	return p, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// invalidInputs writes the field-error envelope shared by all
// validation failures: {"errors": {...}, "message": "Invalid Inputs"}.
func invalidInputs(c echo.Context, status int, errs map[string]string) error {
	return c.JSON(status, echo.Map{"errors": errs, "message": "Invalid Inputs"})
}
