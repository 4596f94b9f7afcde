package delete_blocked_period

import (
	"context"

	"github.com/google/uuid"
)

type BlockedService interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
