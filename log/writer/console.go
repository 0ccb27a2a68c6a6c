package writer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Console 创建控制台输出 writer，写到 stderr 以免干扰命令的标准输出
func Console() zerolog.ConsoleWriter {
	return ConsoleTo(os.Stderr)
}

// ConsoleTo 创建输出到 w 的控制台格式 writer
func ConsoleTo(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:         w,
		TimeFormat:  time.DateTime,
		FormatLevel: formatLevel,
	}
}

// formatLevel 格式化日志级别显示
func formatLevel(i any) string {
	return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
}
