package client

import "fmt"

// TransportError represents a failure at the network/HTTP layer. The
// underlying transport failure is treated as opaque; it is not retried
// and surfaces to the caller as-is.
type TransportError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: GET %s: %v", e.URL, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}
