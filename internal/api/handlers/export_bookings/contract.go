package export_bookings

import (
	"context"
	"io"
	"time"
)

type BookingService interface {
	Export(ctx context.Context, from, to time.Time, w io.Writer) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
