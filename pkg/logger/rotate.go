package logger

import (
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig 日志文件滚动配置
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// NewFileWriter 按大小滚动的日志文件
func NewFileWriter(cfg FileConfig) io.WriteCloser {
	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    maxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

// InitWithFile 同时输出到 stdout 与滚动文件；Path 为空时等同 Init。
// 返回的 Closer 在进程退出前关闭文件。
func InitWithFile(level, format string, file FileConfig) io.Closer {
	if file.Path == "" {
		Init(level, format)
		return nopCloser{}
	}
	w := NewFileWriter(file)
	InitWithWriter(io.MultiWriter(os.Stdout, w), level, format)
	return w
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
