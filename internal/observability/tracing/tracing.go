package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// InjectTraceID attaches a fresh trace id to the zerolog logger carried
// in the context, so every log line of one aggregation request can be
// correlated.
func InjectTraceID(ctx context.Context) context.Context {
	id := uuid.New().String()
	logger := log.With().Str("traceId", id).Logger()
	return logger.WithContext(ctx)
}
