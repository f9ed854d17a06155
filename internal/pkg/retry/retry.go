package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Do runs fn and retries it up to maxRetries times with a fixed delay
// between attempts. It stops early when the context is cancelled.
func Do(ctx context.Context, log *slog.Logger, name string, maxRetries int, delay time.Duration, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			log.Warn("retrying task", "task", name, "attempt", attempt, "max_retries", maxRetries, "error", lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("task %s cancelled: %w", name, ctx.Err())
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("task %s failed after %d retries: %w", name, maxRetries, lastErr)
}
