package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/apikit/log"
)

// RecoveryConfig Recovery 中间件配置
type RecoveryConfig struct {
	StackTrace bool        // 是否记录堆栈信息
	Logger     *log.Logger // 自定义日志记录器
}

// Recovery 捕获 panic，记录日志并以 {"code":500,"message":...} 响应，
// 保证客户端总能拿到可解析的错误体
func Recovery(cfgs ...RecoveryConfig) gin.HandlerFunc {
	cfg := RecoveryConfig{
		StackTrace: true,
	}
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}

	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := cfg.Logger
				if logger == nil {
					logger = log.G
				}

				event := logger.Error().
					Str("error", fmt.Sprintf("%v", err)).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path)
				if cfg.StackTrace {
					event = event.Bytes("stack", debug.Stack())
				}
				event.Msg("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"code":    http.StatusInternalServerError,
					"message": http.StatusText(http.StatusInternalServerError),
				})
			}
		}()
		c.Next()
	}
}
