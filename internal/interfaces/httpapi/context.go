package httpapi

import (
	"context"

	"github.com/riskibarqy/peaks-baseball/internal/platform/logging"
)

const requestIDHeader = "X-Request-ID"

func withRequestID(ctx context.Context, requestID string) context.Context {
	return logging.WithRequestID(ctx, requestID)
}
