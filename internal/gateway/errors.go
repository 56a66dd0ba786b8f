package gateway

import "fmt"

// ConfigError means the backend base URL is missing or still a placeholder.
// No network call was attempted.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}

// RequestError is a response with a non-success HTTP status. Message holds
// whatever the server put in its payload, or a synthesized fallback.
type RequestError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// NetworkError is a transport-level failure: no response at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "Could not reach the backend."
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// fallbackMessage is used when the error payload carries no message field.
func fallbackMessage(method, path string, status int) string {
	return fmt.Sprintf("%s %s failed (%d)", method, path, status)
}
