package log

import (
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"
)

var (
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	white = color.New(color.FgHiWhite).SprintFunc()
)

// Logger is the logging surface used by the SDK.
type Logger interface {
	Debugf(string, ...interface{})
	Infof(string, ...interface{})
	Errorf(string, ...interface{})
}

// LeveledLogger writes colored, leveled lines to a single writer.
type LeveledLogger struct {
	out    map[Level]*log.Logger
	writer io.Writer
}

func NewLeveledLogger(writer io.Writer) *LeveledLogger {
	return &LeveledLogger{
		writer: writer,
		out: map[Level]*log.Logger{
			// debug is disabled by default
			LevelDebug: log.New(io.Discard, white("DBG "), log.Ldate|log.Ltime|log.Lmicroseconds),
			LevelInfo:  log.New(writer, green("INF "), log.Ldate|log.Ltime|log.Lmicroseconds),
			LevelError: log.New(writer, red("ERR "), log.Ldate|log.Ltime|log.Lmicroseconds),
		},
	}
}

func (l *LeveledLogger) SetDebug(enable bool) {
	if enable {
		l.out[LevelDebug].SetOutput(l.writer)
		return
	}
	l.out[LevelDebug].SetOutput(io.Discard)
}

func (l *LeveledLogger) Errorf(msg string, args ...interface{}) {
	l.logf(LevelError, msg, args...)
}

func (l *LeveledLogger) Infof(msg string, args ...interface{}) {
	l.logf(LevelInfo, msg, args...)
}

func (l *LeveledLogger) Debugf(msg string, args ...interface{}) {
	l.logf(LevelDebug, msg, args...)
}

func (l *LeveledLogger) logf(lvl Level, msg string, args ...interface{}) {
	err := l.out[lvl].Output(3, fmt.Sprintf(msg, args...))
	if err != nil {
		fmt.Printf("fatal: could not output logs: %v\n", err)
	}
}

// Discard drops everything.
type Discard struct{}

func (Discard) Debugf(string, ...interface{}) {}
func (Discard) Infof(string, ...interface{})  {}
func (Discard) Errorf(string, ...interface{}) {}
