package utils

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	mainLogName  = "blocklist.log"
	errorLogName = "blocklist_error.log"
)

// Logger 全局日志器
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
	With().
	Timestamp().
	Logger()

// LogConfig 日志配置
type LogConfig struct {
	Level      string // trace, debug, info, warn, error
	LogDir     string // 为空时只输出到控制台
	NoColor    bool   // 默认true, 控制台输出纯文本
	MaxSize    int    // 单个日志文件最大大小(MB)
	MaxBackups int
	MaxAge     int // 天
	Compress   bool
}

// DefaultLogConfig 默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:      "info",
		LogDir:     "",
		NoColor:    true,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}

// InitLogger 初始化日志系统, 进程内调用一次
func InitLogger(config LogConfig) error {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// 控制台只输出消息文本
	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    config.NoColor,
		},
	}

	if config.LogDir != "" {
		if err := os.MkdirAll(config.LogDir, 0755); err != nil {
			return err
		}
		writers = append(writers,
			newRotatingFile(config, mainLogName),
			&FilteredWriter{
				Writer:   newRotatingFile(config, errorLogName),
				MinLevel: zerolog.ErrorLevel,
			},
		)
	}

	Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger()
	log.Logger = Logger

	Logger.Debug().
		Str("level", level.String()).
		Str("log_dir", config.LogDir).
		Msg("logger initialized")

	return nil
}

func newRotatingFile(config LogConfig, name string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(config.LogDir, name),
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}
}

// FilteredWriter 只写入MinLevel及以上级别的日志
// 通过MultiLevelWriter调用时走WriteLevel
type FilteredWriter struct {
	Writer   io.Writer
	MinLevel zerolog.Level
}

// Write 无级别信息时直接写入
func (w *FilteredWriter) Write(p []byte) (n int, err error) {
	return w.Writer.Write(p)
}

// WriteLevel 实现 zerolog.LevelWriter
func (w *FilteredWriter) WriteLevel(level zerolog.Level, p []byte) (n int, err error) {
	if level >= w.MinLevel {
		return w.Writer.Write(p)
	}
	return len(p), nil
}

func Info(msg string) {
	Logger.Info().Msg(msg)
}

func Infof(format string, args ...interface{}) {
	Logger.Info().Msgf(format, args...)
}

// Error 记录错误, err为nil时只记录消息
func Error(err error, msg string) {
	Logger.Error().Err(err).Msg(msg)
}

func Errorf(format string, args ...interface{}) {
	Logger.Error().Msgf(format, args...)
}

func Warn(msg string) {
	Logger.Warn().Msg(msg)
}

func Warnf(format string, args ...interface{}) {
	Logger.Warn().Msgf(format, args...)
}

func Debug(msg string) {
	Logger.Debug().Msg(msg)
}

func Debugf(format string, args ...interface{}) {
	Logger.Debug().Msgf(format, args...)
}
