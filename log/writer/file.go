package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// RotateConfig 日志轮转配置
type RotateConfig struct {
	Mode             RotateMode
	Filepath         string
	Filename         string
	FileExt          string
	TimeRotateConfig TimeRotateConfig
	SizeRotateConfig SizeRotateConfig
}

// TimeRotateConfig 按时间轮转配置
type TimeRotateConfig struct {
	MaxAge       int // 保留时间(小时)
	RotationTime int // 轮转间隔(小时)
}

// SizeRotateConfig 按大小轮转配置
type SizeRotateConfig struct {
	MaxSize    int  // 单文件上限(MB)
	MaxBackups int  // 旧文件个数
	MaxAge     int  // 保留天数
	Compress   bool // gzip 旧文件
}

// File 创建文件输出 writer，目录不存在时自动创建
func File(config RotateConfig) (io.WriteCloser, error) {
	if config.Filename == "" {
		return nil, fmt.Errorf("log filename is empty")
	}
	if err := os.MkdirAll(config.dir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}

	switch config.Mode {
	case RotateModeTime:
		return timeRotateWriter(config)
	case RotateModeSize:
		return sizeRotateWriter(config), nil
	default:
		return nil, fmt.Errorf("unsupported rotate mode: %v", config.Mode)
	}
}

func (c *RotateConfig) dir() string {
	if c.Filepath == "" {
		return "."
	}
	return c.Filepath
}

// fileFullPath 返回 <dir>/<name>.<ext>
func (c *RotateConfig) fileFullPath() string {
	return filepath.Join(c.dir(), c.Filename+"."+c.FileExt)
}

// filePattern 返回按时间轮转的文件名模式 <dir>/<name>.<strftime>.<ext>
func (c *RotateConfig) filePattern(format string) string {
	return filepath.Join(c.dir(), c.Filename+"."+format+"."+c.FileExt)
}
