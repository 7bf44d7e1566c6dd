package response

const (
	MessageSuccess          = "success"
	MessageValidationFailed = "validation failed"
	DefaultErrorMessage     = "internal server error"

	InternalServerErrorCode = 500
	ValidationFailedCode    = 422

	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04:05"
)
