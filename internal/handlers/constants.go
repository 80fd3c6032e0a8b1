package handlers

const (
	RequestIDHeader = "X-Request-ID"

	ErrInvalidID           = "Invalid id"
	ErrInvalidJSON         = "Invalid JSON body"
	ErrTrailingJSON        = "Request body must contain a single JSON object"
	ErrInternalServerError = "Internal server error"
	ErrResourceBusy        = "Resource is being modified, please retry"
	ErrTooManyRequests     = "Too many requests, please slow down"
)
