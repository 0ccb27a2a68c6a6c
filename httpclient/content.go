package httpclient

// Common Content-Types
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain"
)

// Header names set by the client.
const (
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-Id"
)
