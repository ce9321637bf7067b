package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeMissingParameter     ErrorCode = 102

	// Data errors (200-299)
	ErrCodeNoData           ErrorCode = 200
	ErrCodeNoHistoricalData ErrorCode = 201

	// Indicator errors (300-399)
	ErrCodeInsufficientData ErrorCode = 300
	ErrCodeComputation      ErrorCode = 301

	// Upstream provider errors (400-499)
	ErrCodeUpstreamTimeout     ErrorCode = 400
	ErrCodeUpstreamUnreachable ErrorCode = 401
	ErrCodeUpstreamRejected    ErrorCode = 402

	// AI provider errors (500-599)
	ErrCodeAINotConfigured   ErrorCode = 500
	ErrCodeAIRequestFailed   ErrorCode = 501
	ErrCodeAIResponseInvalid ErrorCode = 502

	// Search provider errors (600-699)
	ErrCodeSearchNotConfigured ErrorCode = 600
)
