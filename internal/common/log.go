package common

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// Logger returns the package-wide logger. It is a no-op logger until
// SetLogger installs one.
func Logger() *zap.Logger {
	return logger.Load()
}

// SetLogger replaces the package-wide logger. A nil logger restores the no-op.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// FormatDuration formats a duration with 2 decimal places.
// Returns a string like "1.23 ms" (no padding).
func FormatDuration(d time.Duration) string {
	ms := float64(d) / float64(time.Millisecond)

	if ms >= 1000 {
		return fmt.Sprintf("%.2f s", ms/1000)
	} else if ms < 0.01 {
		// Sub-0.01 ms: show in microseconds
		return fmt.Sprintf("%.2f us", ms*1000)
	}
	return fmt.Sprintf("%.2f ms", ms)
}

// LogDuration logs msg at debug level with the elapsed time since start.
func LogDuration(start time.Time, msg string, fields ...zap.Field) {
	fields = append(fields, zap.String("elapsed", FormatDuration(time.Since(start))))
	Logger().Debug(msg, fields...)
}
