package utils

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang-quant/pkg/logger"
)

// ContainsString checks if a slice of strings contains a specific string.
func ContainsString(slice []string, str string) bool {
	for _, item := range slice {
		if item == str {
			return true
		}
	}
	return false
}

func ToPointer[T any](value T) *T {
	return &value
}

// ShouldContinue reports whether the context is still alive, logging the
// caller when it is not. Long loops check this between iterations.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		pc, _, _, ok := runtime.Caller(1)
		funcName := "unknown"
		if ok {
			fn := runtime.FuncForPC(pc)
			if fn != nil {
				parts := strings.Split(fn.Name(), "/")
				funcName = parts[len(parts)-1]
			}
		}

		log.Warn("Context cancelled",
			logger.StringField("caller", funcName),
		)
		return false
	default:
		return true
	}
}

func FormatPercentage(value float64) string {
	return fmt.Sprintf("%+.2f%%", value)
}
