package llm

import "fmt"

// InvocationError represents a failed model call
type InvocationError struct {
	Provider Provider
	Message  string
	Cause    error
}

func (e *InvocationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s call failed: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s call failed: %s", e.Provider, e.Message)
}

func (e *InvocationError) Unwrap() error {
	return e.Cause
}
