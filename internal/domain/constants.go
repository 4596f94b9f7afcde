package domain

// Business validation constants
const (
	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = 600
	MaxServiceNameLength      = 100
	MaxDescriptionLength      = 1000
	MaxCustomerNameLength     = 100
	MaxCustomerEmailLength    = 254
	MaxCustomerPhoneLength    = 32
	MaxCustomerIDLength       = 64 // bookings.customer_id VARCHAR(64)
	MaxBlockReasonLength      = 255
	CancelTokenBytes          = 32
	MaxExportRangeDays        = 366
)

// Time format constants
const (
	TimeFormat    = "15:04"      // HH:MM
	DateFormat    = "2006-01-02" // YYYY-MM-DD
	DayNameFormat = "Mon, Jan 2"
)
