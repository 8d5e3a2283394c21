package logx

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/z-sdk/multisert/lib/errorx"
	"github.com/z-sdk/multisert/lib/fs"
	"github.com/z-sdk/multisert/lib/sysx"
)

const (
	// 日志级别值
	InfoLevel = iota
	ErrorLevel
	FatalLevel
)

const (
	// 日志级别名称
	infoLevel  = "info"  // 信息级
	errorLevel = "error" // 错误级
	fatalLevel = "fatal" // 重大级
	slowLevel  = "slow"  // 慢级别
	statLevel  = "stat"  // 统计级

	// 日志文件
	accessFilename = "access.log"
	errorFilename  = "error.log"
	slowFilename   = "slow.log"
	statFilename   = "stat.log"

	// 日志模式
	consoleMode = "console"
	volumeMode  = "volume" // 按服务名和主机名分目录写文件

	timeFormat       = "2006-01-02T15:04:05.000Z07"
	callerInnerDepth = 4 // 堆栈调用深度
	typeKey          = "type"
	durationKey      = "duration"
)

var (
	// 日志类型
	infoLogger  = newLogger(os.Stdout) // 信息日志
	errorLogger = newLogger(os.Stderr) // 错误日志
	slowLogger  = newLogger(os.Stderr) // 慢日志
	statLogger  = newLogger(os.Stdout) // 统计日志

	logLevel uint32    // 日志级别
	once     sync.Once // 一次操作对象
	closers  []io.Closer

	ErrLogServiceNameNotSet = errors.New("日志服务名称必须设置")
	ErrLogPathNotSet        = errors.New("日志路径必须设置")
)

type (
	// Logger 附带额外字段的日志记录器
	Logger interface {
		Info(v ...interface{})
		Infof(format string, args ...interface{})
		Error(v ...interface{})
		Errorf(format string, args ...interface{})
		Slow(v ...interface{})
		Slowf(format string, args ...interface{})
	}

	durationLogger logrus.Fields
)

// SetLevel 设置日志级别，低于该级别的日志不输出
func SetLevel(level uint32) {
	atomic.StoreUint32(&logLevel, level)
}

// Setup 按配置初始化日志，只有第一次调用生效
func Setup(c LogConf) error {
	switch c.Mode {
	case consoleMode:
		setupWithConsole(c)
		return nil
	case volumeMode:
		return setupWithVolume(c)
	default:
		return setupWithFile(c)
	}
}

// MustSetup 初始化日志，出错时直接退出
func MustSetup(c LogConf) {
	if err := Setup(c); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Close 关闭文件模式下打开的日志文件
func Close() error {
	var errs errorx.Errors
	for _, closer := range closers {
		errs.Append(closer.Close())
	}
	closers = nil
	return errs.Err()
}

// Disable 禁用所有日志，将输出变为空操作
func Disable() {
	once.Do(func() {
		for _, logger := range []*logrus.Logger{infoLogger, errorLogger, slowLogger, statLogger} {
			logger.SetOutput(ioutil.Discard)
		}
	})
}

func Info(v ...interface{}) {
	syncInfo(fmt.Sprint(v...), nil)
}

func Infof(format string, args ...interface{}) {
	syncInfo(fmt.Sprintf(format, args...), nil)
}

func Error(v ...interface{}) {
	ErrorCaller(1, v...)
}

func Errorf(format string, args ...interface{}) {
	ErrorCallerf(1, format, args...)
}

func ErrorCaller(callDepth int, v ...interface{}) {
	syncError(fmt.Sprint(v...), callDepth+callerInnerDepth, nil)
}

func ErrorCallerf(callDepth int, format string, args ...interface{}) {
	syncError(fmt.Sprintf(format, args...), callDepth+callerInnerDepth, nil)
}

func Slow(v ...interface{}) {
	syncSlow(fmt.Sprint(v...), nil)
}

func Slowf(format string, args ...interface{}) {
	syncSlow(fmt.Sprintf(format, args...), nil)
}

func Stat(v ...interface{}) {
	syncStat(fmt.Sprint(v...))
}

func Statf(format string, args ...interface{}) {
	syncStat(fmt.Sprintf(format, args...))
}

// WithDuration 返回附带耗时字段的日志记录器
func WithDuration(d time.Duration) Logger {
	return durationLogger{durationKey: reprOfDuration(d)}
}

func (l durationLogger) Info(v ...interface{}) {
	syncInfo(fmt.Sprint(v...), logrus.Fields(l))
}

func (l durationLogger) Infof(format string, args ...interface{}) {
	syncInfo(fmt.Sprintf(format, args...), logrus.Fields(l))
}

func (l durationLogger) Error(v ...interface{}) {
	syncError(fmt.Sprint(v...), callerInnerDepth, logrus.Fields(l))
}

func (l durationLogger) Errorf(format string, args ...interface{}) {
	syncError(fmt.Sprintf(format, args...), callerInnerDepth, logrus.Fields(l))
}

func (l durationLogger) Slow(v ...interface{}) {
	syncSlow(fmt.Sprint(v...), logrus.Fields(l))
}

func (l durationLogger) Slowf(format string, args ...interface{}) {
	syncSlow(fmt.Sprintf(format, args...), logrus.Fields(l))
}

func newLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: timeFormat,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "@timestamp",
			logrus.FieldKeyMsg:  "content",
		},
	})
	return logger
}

func setupWithConsole(c LogConf) {
	once.Do(func() {
		setupLogLevel(c)
		infoLogger.SetOutput(os.Stdout)
		errorLogger.SetOutput(os.Stderr)
		slowLogger.SetOutput(os.Stderr)
		statLogger.SetOutput(os.Stdout)
	})
}

func setupWithFile(c LogConf) error {
	if len(c.Path) == 0 {
		return ErrLogPathNotSet
	}

	var err error
	once.Do(func() {
		setupLogLevel(c)
		if err = os.MkdirAll(c.Path, 0755); err != nil {
			return
		}

		outputs := map[*logrus.Logger]string{
			infoLogger:  accessFilename,
			errorLogger: errorFilename,
			slowLogger:  slowFilename,
			statLogger:  statFilename,
		}
		for logger, filename := range outputs {
			var file *os.File
			if file, err = createOutput(path.Join(c.Path, filename)); err != nil {
				return
			}
			closers = append(closers, file)
			logger.SetOutput(file)
		}
	})

	return err
}

func setupWithVolume(c LogConf) error {
	if len(c.ServiceName) == 0 {
		return ErrLogServiceNameNotSet
	}

	c.Path = path.Join(c.Path, c.ServiceName, sysx.Hostname())
	return setupWithFile(c)
}

func createOutput(filename string) (*os.File, error) {
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "创建日志文件 %s 失败", filename)
	}

	fs.CloseOnExec(file)
	return file, nil
}

// shouldLog 对比日志级别确定是否需要记录
func shouldLog(level uint32) bool {
	return atomic.LoadUint32(&logLevel) <= level
}

func syncInfo(msg string, fields logrus.Fields) {
	if shouldLog(InfoLevel) {
		infoLogger.WithFields(fields).Info(msg)
	}
}

func syncError(msg string, callDepth int, fields logrus.Fields) {
	if shouldLog(ErrorLevel) {
		errorLogger.WithFields(fields).Error(formatWithCaller(msg, callDepth))
	}
}

func syncSlow(msg string, fields logrus.Fields) {
	if shouldLog(ErrorLevel) {
		slowLogger.WithFields(fields).WithField(typeKey, slowLevel).Warn(msg)
	}
}

func syncStat(msg string) {
	if shouldLog(InfoLevel) {
		statLogger.WithField(typeKey, statLevel).Info(msg)
	}
}

func formatWithCaller(msg string, callDepth int) string {
	var b strings.Builder

	caller := getCaller(callDepth)
	if len(caller) > 0 {
		b.WriteString(caller)
		b.WriteByte(' ')
	}
	b.WriteString(msg)

	return b.String()
}

func getCaller(callDepth int) string {
	var b strings.Builder

	_, file, line, ok := runtime.Caller(callDepth)
	if ok {
		short := file
		for i := len(file) - 1; i > 0; i-- {
			if file[i] == '/' {
				short = file[i+1:]
				break
			}
		}
		b.WriteString(short)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(line))
	}

	return b.String()
}

func reprOfDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fms", float32(d)/float32(time.Millisecond))
}

func setupLogLevel(c LogConf) {
	switch c.Level {
	case infoLevel:
		SetLevel(InfoLevel)
	case errorLevel:
		SetLevel(ErrorLevel)
	case fatalLevel:
		SetLevel(FatalLevel)
	}
}
