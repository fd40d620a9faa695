package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// parseID reads a numeric path parameter.
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
