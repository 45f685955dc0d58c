package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/gradebook-server/internal/logger"
)

// Logging records method, route, status and duration of every request.
type Logging struct {
	logger *logger.Logger
}

func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle is the echo middleware.
func (l *Logging) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			// let the error handler write the response so the real status is logged
			c.Error(err)
		}

		req := c.Request()
		res := c.Response()
		l.logger.Info("HTTP request completed",
			"method", req.Method,
			"path", req.URL.Path,
			"route", c.Path(),
			"status", res.Status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", res.Header().Get(echo.HeaderXRequestID))

		return nil
	}
}
