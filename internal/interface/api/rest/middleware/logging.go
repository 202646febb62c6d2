package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"attachments-api/internal/infrastructure/metrics"
)

const maxLogBodySize = 1 << 12 // 4 KB

// stitchedBody replays the logged prefix and then the unread rest of the
// original body. Close goes to the original body.
type stitchedBody struct {
	io.Reader
	io.Closer
}

// peekBody reads up to maxLogBodySize bytes for the log line and hands the
// handler a body that still yields every byte.
func peekBody(r *http.Request) (string, bool) {
	var buf bytes.Buffer
	n, _ := io.CopyN(&buf, r.Body, maxLogBodySize)

	orig := r.Body
	r.Body = stitchedBody{
		Reader: io.MultiReader(bytes.NewReader(buf.Bytes()), orig),
		Closer: orig,
	}

	return buf.String(), n == maxLogBodySize
}

func RequestLogGin(logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions ||
			c.Request.URL.Path == "/favicon.ico" ||
			strings.HasSuffix(c.Request.URL.Path, "/metrics") {
			c.Next()
			return
		}

		start := time.Now()

		var (
			body      string
			truncated bool
		)
		if c.Request.Body != nil && c.Request.Body != http.NoBody {
			switch {
			case strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data"):
				body = "<multipart/form-data omitted>"
			case c.Request.ContentLength > maxLogBodySize:
				body, truncated = "<body omitted>", true
			default:
				body, truncated = peekBody(c.Request)
			}
		}

		c.Next()

		if mCounter != nil {
			mCounter.WithLabelValues(metrics.RequestsTotal).Inc()
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("body", body),
			zap.Bool("body_truncated", truncated),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if model := c.Param("model"); model != "" {
			fields = append(fields, zap.String("model", model), zap.String("owner_id", c.Param("owner_id")))
		}
		if userID, ok := c.Get(CtxUserID); ok {
			fields = append(fields, zap.Any("user_id", userID))
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("HTTP request", fields...)
			return
		}
		logger.Info("HTTP request", fields...)
	}
}
