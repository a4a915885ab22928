package llm

// ErrorKind classifies a completion failure.
type ErrorKind string

const (
	// KindTransport means the request never produced an HTTP response.
	KindTransport ErrorKind = "transport"
	// KindStatus means the endpoint answered with a non-2xx status.
	KindStatus ErrorKind = "status"
	// KindMalformed means the response body was empty or not usable.
	KindMalformed ErrorKind = "malformed"
)

// CompletionError is the recoverable failure of a single completion call.
// Its message is human-readable and safe to show to the end user in place
// of a reply; it never contains the API key.
type CompletionError struct {
	Kind    ErrorKind
	Message string
}

func (e *CompletionError) Error() string {
	return e.Message
}
