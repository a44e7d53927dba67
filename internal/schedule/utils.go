package schedule

import (
	"context"
	"time"

	"go-micro.dev/v4/logger"
)

// GetLoggingWrapper passes the logger to the task body and logs its completion
func GetLoggingWrapper(l logger.Logger, fn func(logger.Logger, context.Context) error) ExecuteFn {
	return func(ctx context.Context) error {
		started := time.Now()
		if err := fn(l, ctx); err != nil {
			l.Logf(logger.WarnLevel, "Operation failed: %s", err)
			return err
		}
		l.Logf(logger.DebugLevel, "Complete in %s", time.Since(started))
		return nil
	}
}
