package delete_service

import (
	"context"

	"github.com/google/uuid"
)

type CatalogService interface {
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
