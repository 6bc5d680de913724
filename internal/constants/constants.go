package constants

// Session
const (
	SessionCookieName = "dashboard_session"

	SessionKeySelectedYear  = "selected_year"
	SessionKeySelectedMonth = "selected_month"
)

// Context keys
const (
	ContextKeyPeriod         = "period"
	ContextKeyPeriodSelected = "period_selected"
	ContextKeySessionPeriod  = "session_period"
	ContextKeyResource       = "resource"
	ContextKeyProject        = "project"
	ContextKeyRequestID      = "request_id"
)

// Attendance
const (
	HoursPerDay = 8

	MinSelectableYear = 2020
	MaxSelectableYear = 2030
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// Request tracing
const RequestIDHeader = "X-Request-ID"
