package orchestrator

// unknownServiceError reports a request for a service name that was
// never registered.
type unknownServiceError struct {
	name string
}

func (e unknownServiceError) Error() string { return "unknown service: " + e.name }

// ErrUnknownService returns the error for an unregistered name.
func ErrUnknownService(name string) error {
	return unknownServiceError{name: name}
}

// IsUnknownService reports whether err is an unknown-service error.
func IsUnknownService(err error) bool {
	_, ok := err.(unknownServiceError)
	return ok
}
