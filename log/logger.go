package log

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/kochabx/apikit/log/writer"
)

// Logger 日志记录器
type Logger struct {
	zerolog.Logger
	writer io.Writer
	closer io.Closer // 文件 writer 需要关闭
}

// Close 关闭日志记录器，释放资源
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// Writer 返回底层输出
func (l *Logger) Writer() io.Writer {
	return l.writer
}

// Component 返回带 component 字段的子 Logger
func (l *Logger) Component(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With().Str("component", name).Logger(),
		writer: l.writer,
	}
}

func init() {
	zerolog.TimeFieldFormat = time.DateTime
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// SetZerologGlobalLevel 设置 zerolog 全局日志级别
func SetZerologGlobalLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// ParseLevel 解析配置中的级别字符串，空串视为 info
func ParseLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// newLogger 统一的 Logger 构建方法
func newLogger(w io.Writer, opts ...Option) *Logger {
	logger := &Logger{
		writer: w,
		Logger: zerolog.New(w).With().Timestamp().Logger(),
	}

	for _, opt := range opts {
		opt(logger)
	}

	return logger
}

// New 创建输出到控制台的 Logger
func New(opts ...Option) *Logger {
	return newLogger(writer.Console(), opts...)
}

// NewWriter 创建输出到任意 writer 的 JSON Logger，测试中常用
func NewWriter(w io.Writer, opts ...Option) *Logger {
	return newLogger(w, opts...)
}

// Nop 返回丢弃所有输出的 Logger
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop(), writer: io.Discard}
}

// NewFile 创建文件输出的 Logger
func NewFile(c FileConfig, opts ...Option) (*Logger, error) {
	c.applyDefaults()

	w, err := writer.File(c.toWriterConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}

	logger := newLogger(w, opts...)
	logger.closer = w
	return logger, nil
}

// NewMulti 创建同时输出到文件和控制台的 Logger
func NewMulti(c FileConfig, opts ...Option) (*Logger, error) {
	c.applyDefaults()

	fw, err := writer.File(c.toWriterConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}

	logger := newLogger(zerolog.MultiLevelWriter(fw, writer.Console()), opts...)
	logger.closer = fw
	return logger, nil
}
