package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldDate       = "date"
	FieldMonth      = "month"
	FieldCurrency   = "currency"
	FieldRate       = "rate"
	FieldProvider   = "provider"
	FieldTxID       = "transaction_id"
	FieldTxType     = "transaction_type"
	FieldAmountBase = "amount_base"
	FieldCount      = "count"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentBackup = "backup"
)
