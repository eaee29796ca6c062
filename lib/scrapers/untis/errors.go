package untis

import "fmt"

// ConfigurationError means the school identity was incomplete, it is
// returned before any network activity happens.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("incomplete school identity: %s is missing", e.Field)
}

// TransportError covers the two ways the HTTP exchange itself can go
// wrong: the request never completed (Err is set, StatusCode is 0), or a
// response arrived outside the success range (StatusCode and Body are set).
type TransportError struct {
	Err        error
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("monitor request failed: %s", e.Err)
	}
	return fmt.Sprintf("monitor request returned status %d: %s", e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a domain error the endpoint reports inside a 200-status
// body instead of through the HTTP status.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("monitor api error %d: %s", e.Code, e.Message)
}

// ParseError means the response body was not the JSON envelope we expect.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to decode monitor response: %s", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
