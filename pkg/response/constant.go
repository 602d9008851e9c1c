package response

const (
	MessageSuccess          = "Success"
	DefaultErrorMessage     = "Something went wrong"
	InternalServerErrorCode = 500
)

// Plain-text bodies the platform webhook contract expects.
const (
	TextEventReceived = "EVENT_RECEIVED"
	TextUnauthorized  = "Unauthorized"
)
