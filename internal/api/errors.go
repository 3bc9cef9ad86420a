package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/gff/internal/resource"
)

func writeBadRequest(c *echo.Context, id, msg string) error {
	return writeError(c, http.StatusBadRequest, id, "invalid_request_error", msg, "")
}

// writeResourceError keeps decode offsets out of the response; the loader
// has already logged them.
func writeResourceError(c *echo.Context, id string, err error) error {
	kind := resourceKind(err)
	if kind == "" {
		return writeError(c, http.StatusInternalServerError, id, "server_error", "failed to load resource", "")
	}
	return writeError(c, http.StatusUnprocessableEntity, id, kind, err.Error(), kind)
}

func writeError(c *echo.Context, status int, id, errType, msg, code string) error {
	return c.JSON(status, ErrorResponse{
		RequestID: id,
		Error: ResponseError{
			Message: msg,
			Type:    errType,
			Code:    code,
		},
	})
}

func resourceKind(err error) string {
	switch {
	case errors.Is(err, resource.ErrUnsupportedResource):
		return "unsupported_resource"
	case errors.Is(err, resource.ErrCorruptResource):
		return "corrupt_resource"
	default:
		return ""
	}
}
