package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// HeaderRequestID request correlation header
const HeaderRequestID = "X-Request-ID"

const (
	contextKeyRequestID = "request_id"
	contextKeyLogger    = "logger"
	contextKeyLogUserID = "log_user_id"
)

// RequestID reuses the caller's X-Request-ID or assigns a new uuid, and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(contextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID request id assigned by RequestID
func GetRequestID(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}

// AccessLog attaches a request-scoped logger and writes one entry per request.
func AccessLog(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		entry := log.WithField("request_id", GetRequestID(c))
		c.Set(contextKeyLogger, entry)

		c.Next()

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if userID := c.GetInt64(contextKeyLogUserID); userID > 0 {
			fields["user_id"] = userID
		}

		e := entry.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= 500:
			e.Error("request")
		case status >= 400:
			e.Warn("request")
		default:
			e.Info("request")
		}
	}
}

// Logger request-scoped logger; falls back to the standard logger outside AccessLog.
func Logger(c *gin.Context) logrus.FieldLogger {
	if v, exists := c.Get(contextKeyLogger); exists {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.StandardLogger().WithField("request_id", GetRequestID(c))
}

func setLogUser(c *gin.Context, userID int64) {
	c.Set(contextKeyLogUserID, userID)
}
