package logging

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter satisfies calculation.Logger on top of a slog.Logger
type SlogAdapter struct {
	Logger *slog.Logger
}

// NewSlogAdapter wraps l; a nil logger uses slog.Default()
func NewSlogAdapter(l *slog.Logger) *SlogAdapter {
	if l == nil {
		l = slog.Default()
	}
	return &SlogAdapter{Logger: l}
}

func (a *SlogAdapter) Debugf(format string, args ...any) { a.log(slog.LevelDebug, format, args...) }
func (a *SlogAdapter) Infof(format string, args ...any)  { a.log(slog.LevelInfo, format, args...) }
func (a *SlogAdapter) Warnf(format string, args ...any)  { a.log(slog.LevelWarn, format, args...) }
func (a *SlogAdapter) Errorf(format string, args ...any) { a.log(slog.LevelError, format, args...) }

func (a *SlogAdapter) log(level slog.Level, format string, args ...any) {
	ctx := context.Background()
	if !a.Logger.Enabled(ctx, level) {
		return
	}
	a.Logger.Log(ctx, level, fmt.Sprintf(format, args...), "component", "calculation")
}
