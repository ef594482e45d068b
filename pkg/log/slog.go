package log

import (
	"fmt"
	"log/slog"
)

// SlogAdapter forwards to the default slog logger.
type SlogAdapter struct{}

func (s SlogAdapter) Debugf(msg string, args ...interface{}) {
	slog.Debug(fmt.Sprintf(msg, args...))
}

func (s SlogAdapter) Infof(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...))
}

func (s SlogAdapter) Errorf(msg string, args ...interface{}) {
	slog.Error(fmt.Sprintf(msg, args...))
}
