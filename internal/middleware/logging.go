package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// quietPaths are logged at debug level; load balancers poll them.
var quietPaths = map[string]bool{"/health": true}

// redactQuery drops the token parameter the websocket route accepts.
func redactQuery(u *url.URL) string {
	q := u.Query()
	if q.Has("token") {
		q.Set("token", "redacted")
	}
	return q.Encode()
}

// GinZapMiddleware writes one entry per request. Server errors log at error,
// client errors at warn, and the rest at info.
func GinZapMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.String("path", c.Request.URL.Path),
			zap.Duration("latency", time.Since(start)),
			zap.Int("bytes", max(c.Writer.Size(), 0)),
			zap.String("lang", GetLang(c)),
		}
		if c.Request.URL.RawQuery != "" {
			fields = append(fields, zap.String("query", redactQuery(c.Request.URL)))
		}
		if userID := c.GetString(CtxUserID); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}
		if id := c.Param("id"); id != "" {
			fields = append(fields, zap.String("entity_id", id))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		level := zapcore.InfoLevel
		switch {
		case status >= http.StatusInternalServerError:
			level = zapcore.ErrorLevel
		case status >= http.StatusBadRequest:
			level = zapcore.WarnLevel
		case quietPaths[c.Request.URL.Path]:
			level = zapcore.DebugLevel
		}
		if ce := logger.Check(level, "http request"); ce != nil {
			ce.Write(fields...)
		}
	}
}
