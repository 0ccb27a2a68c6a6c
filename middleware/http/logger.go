package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/apikit/log"
)

// LoggerConfig 日志中间件配置
type LoggerConfig struct {
	SkipPaths []string    // 精确匹配时跳过记录，如 "/healthz"
	Logger    *log.Logger // 自定义日志记录器
}

// Logger 创建访问日志中间件，4xx 记为 warn，5xx 记为 error
func Logger(cfgs ...LoggerConfig) gin.HandlerFunc {
	cfg := LoggerConfig{}
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}

	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		logger := cfg.Logger
		if logger == nil {
			logger = log.G
		}

		status := c.Writer.Status()
		event := logger.Info()
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		}

		event = event.
			Int("status", status).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Dur("duration", time.Since(start))

		if query := c.Request.URL.RawQuery; query != "" {
			event = event.Str("query", query)
		}
		if requestID := c.Request.Header.Get("X-Request-Id"); requestID != "" {
			event = event.Str("request_id", requestID)
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.ByType(gin.ErrorTypePrivate).String())
		}

		event.Send()
	}
}
