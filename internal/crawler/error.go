package crawler

var _ error = (*Error)(nil)

// Error is a crawler error.
type Error string

// Error implements the error interface.
func (e Error) Error() string {
	return string(e)
}

const (
	// ErrMissingHostname indicates that the seed url is missing hostname.
	ErrMissingHostname = Error("missing hostname")
	// ErrUnsupportedScheme indicates that the seed url contains an unsupported scheme.
	ErrUnsupportedScheme = Error("unsupported scheme")
	// ErrInvalidURL indicates that a discovered href could not be parsed or resolved.
	ErrInvalidURL = Error("invalid url")
	// ErrOperationCanceled indicates that the crawl was interrupted before reaching its fixed point.
	ErrOperationCanceled = Error("operation canceled")
)
