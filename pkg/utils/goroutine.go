package utils

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"golang-news-globe/pkg/logger"
)

// GoSafe runs fn in a goroutine and recovers any panic so one bad worker cannot crash the process.
func GoSafe(fn func()) {
	go RunSafe(fn)
}

// RunSafe runs fn and recovers any panic.
func RunSafe(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n%s", r, debug.Stack())
		}
	}()
	fn()
}

// ShouldContinue reports whether ctx is still alive, logging when it is not.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		log.Warn("Context done, stopping work", logger.ErrorField(ctx.Err()))
		return false
	default:
		return true
	}
}
