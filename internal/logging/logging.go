package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

const contextLoggerKey = "logger"

// New returns a logger writing to out. format is "text" or "json".
func New(level, format string, out io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	logger := log.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	switch strings.ToLower(format) {
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		return nil, fmt.Errorf("New: unknown log format %q", format)
	}
	return logger, nil
}

// RequestLogger logs one entry per request and leaves a request scoped
// entry in the echo context for handlers.
func RequestLogger(logger *log.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		LogRemoteIP: true,
		HandleError: true,
		BeforeNextFunc: func(c echo.Context) {
			c.Set(contextLoggerKey, logger.WithFields(log.Fields{
				"method": c.Request().Method,
				"uri":    c.Request().RequestURI,
			}))
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := logger.WithFields(log.Fields{
				"method":    v.Method,
				"uri":       v.URI,
				"status":    v.Status,
				"latency":   v.Latency.String(),
				"remote_ip": v.RemoteIP,
			})
			switch {
			case v.Error != nil && v.Status >= 500:
				entry.WithError(v.Error).Error("request failed")
			case v.Status >= 500:
				entry.Error("request failed")
			case v.Status >= 400:
				entry.Info("request rejected")
			default:
				entry.Debug("request")
			}
			return nil
		},
	})
}

// FromContext returns the request entry set by RequestLogger, or a
// standard logger entry when the middleware is not installed.
func FromContext(c echo.Context) *log.Entry {
	if e, ok := c.Get(contextLoggerKey).(*log.Entry); ok {
		return e
	}
	return log.NewEntry(log.StandardLogger())
}
