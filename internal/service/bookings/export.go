package bookings

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/ptr"
)

const exportSheet = "Bookings"

var exportColumns = []string{
	"Date", "Start", "End", "Service", "Price", "Customer", "Email", "Phone", "Status", "Created",
}

// Export writes bookings with from <= date <= to as an xlsx workbook.
func (s *Service) Export(ctx context.Context, from, to time.Time, w io.Writer) (int, error) {
	bookings, err := s.ListRange(ctx, from, to)
	if err != nil {
		return 0, err
	}

	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", exportSheet); err != nil {
		return 0, fmt.Errorf("%w: Export - rename sheet: %v", ErrInternal, err)
	}

	if err := writeRow(file, 1, toCells(exportColumns)); err != nil {
		return 0, fmt.Errorf("%w: Export - header: %v", ErrInternal, err)
	}
	if style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
		_ = file.SetCellStyle(exportSheet, "A1", last, style)
	}

	for i, b := range bookings {
		if err := writeRow(file, i+2, exportRow(b)); err != nil {
			return 0, fmt.Errorf("%w: Export - row %d: %v", ErrInternal, i+2, err)
		}
	}

	if err := file.Write(w); err != nil {
		return 0, fmt.Errorf("%w: Export - write workbook: %v", ErrInternal, err)
	}

	s.logger.Info("Export: wrote %d bookings for %s..%s",
		len(bookings), from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	return len(bookings), nil
}

func exportRow(b *domain.Booking) []interface{} {
	return []interface{}{
		b.BookingDate.Format(domain.DateFormat),
		b.StartTime.String(),
		b.EndTime.String(),
		b.ServiceName,
		b.ServicePrice,
		b.CustomerName,
		b.CustomerEmail,
		ptr.Value(b.CustomerPhone),
		string(b.Status),
		b.CreatedAt.Format(time.RFC3339),
	}
}

func writeRow(file *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return file.SetSheetRow(exportSheet, cell, &values)
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
