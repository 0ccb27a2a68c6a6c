package writer

import (
	"fmt"
	"io"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotateMode 日志轮转模式
type RotateMode int

const (
	// RotateModeTime 按时间轮转
	RotateModeTime RotateMode = iota
	// RotateModeSize 按大小轮转
	RotateModeSize
)

// String 返回轮转模式的字符串表示
func (m RotateMode) String() string {
	switch m {
	case RotateModeTime:
		return "time"
	case RotateModeSize:
		return "size"
	default:
		return "unknown"
	}
}

// ParseRotateMode 解析 "time" / "size"，空串默认按大小轮转
func ParseRotateMode(s string) (RotateMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "size":
		return RotateModeSize, nil
	case "time":
		return RotateModeTime, nil
	default:
		return RotateModeSize, fmt.Errorf("unknown rotate mode %q", s)
	}
}

// timeRotateWriter 按时间轮转的 writer
func timeRotateWriter(config RotateConfig) (io.WriteCloser, error) {
	writer, err := rotatelogs.New(
		config.filePattern("%Y%m%d%H%M"),
		rotatelogs.WithLinkName(config.fileFullPath()),
		rotatelogs.WithMaxAge(time.Duration(config.TimeRotateConfig.MaxAge)*time.Hour),
		rotatelogs.WithRotationTime(time.Duration(config.TimeRotateConfig.RotationTime)*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create time rotate writer: %w", err)
	}
	return writer, nil
}

// sizeRotateWriter 按大小轮转的 writer
func sizeRotateWriter(config RotateConfig) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   config.fileFullPath(),
		MaxSize:    config.SizeRotateConfig.MaxSize,
		MaxBackups: config.SizeRotateConfig.MaxBackups,
		MaxAge:     config.SizeRotateConfig.MaxAge,
		Compress:   config.SizeRotateConfig.Compress,
	}
}
