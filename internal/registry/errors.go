package registry

import "fmt"

// RegistryError reports misuse of the function registry itself: an unknown
// function name at call time, a bad registration, or a built-in raising on
// misuse. It mirrors the teacher's GraphError/QueryError Kind+Message shape
// (internal/graph/errors.go, internal/query/errors.go).
type RegistryError struct {
	Kind    string
	Message string
	Cause   error
}

func (e RegistryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("registry error (%v): %v: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("registry error (%v): %v", e.Kind, e.Message)
}

func (e RegistryError) Unwrap() error { return e.Cause }

func UnknownFunction(name string) error {
	return RegistryError{
		Kind:    "UnknownFunction",
		Message: fmt.Sprintf("Unknown function: %s", name),
	}
}

func ExecutionFailed(name string, cause error) error {
	return RegistryError{
		Kind:    "FunctionExecutionFailed",
		Message: fmt.Sprintf("function execution failed: %s", name),
		Cause:   cause,
	}
}

func InvalidRegistration(reason string) error {
	return RegistryError{
		Kind:    "InvalidRegistration",
		Message: reason,
	}
}
