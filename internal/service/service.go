// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives bound request shapes from the handler, validates
// them, performs business operations, and calls repository
// methods to read and persist records.
package service

import (
	"context"

	"github.com/rs/zerolog"
)

// loggerFrom returns the request-scoped logger stored in ctx, or fallback
// outside of a request (CLI, tests).
func loggerFrom(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if logger := zerolog.Ctx(ctx); logger.GetLevel() != zerolog.Disabled {
		return logger
	}
	return fallback
}
