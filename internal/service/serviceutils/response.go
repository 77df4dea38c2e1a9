package serviceutils

import (
	"github.com/labstack/echo/v4"
	"github.com/locvowork/employee_directory/internal/logger"
)

// Response is the JSON envelope returned by every endpoint.
type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ResponseSuccess writes data wrapped in the standard envelope.
func ResponseSuccess(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{Message: message, Data: data})
}

// ResponseError logs err and writes it in the standard envelope.
func ResponseError(c echo.Context, status int, message string, err error) error {
	resp := Response{Message: message}
	if err != nil {
		resp.Error = err.Error()
		logger.ErrorLog(c.Request().Context(), "%s: %v", message, err)
	}
	return c.JSON(status, resp)
}
