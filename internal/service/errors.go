package service

// notReadyError signals a service that has not finished initializing,
// for 503 mapping.
type notReadyError struct{ service string }

func (e notReadyError) Error() string { return "service not ready: " + e.service }

// ErrNotReady constructs a notReadyError.
func ErrNotReady(service string) error { return notReadyError{service: service} }

// IsNotReady reports whether err indicates an uninitialized service.
func IsNotReady(err error) bool {
	_, ok := err.(notReadyError)
	return ok
}

// initFailedError signals that model construction failed during
// initialization. The service stays retryable.
type initFailedError struct {
	service string
	msg     string
}

func (e initFailedError) Error() string {
	return "initialization failed: " + e.service + ": " + e.msg
}

// ErrInitFailed constructs an initFailedError.
func ErrInitFailed(service, msg string) error {
	return initFailedError{service: service, msg: msg}
}

// IsInitFailed reports whether err indicates failed model construction.
func IsInitFailed(err error) bool {
	_, ok := err.(initFailedError)
	return ok
}

// validationError signals malformed request input, for 400 mapping.
type validationError struct{ msg string }

func (e validationError) Error() string { return e.msg }

// ErrValidation constructs a validationError.
func ErrValidation(msg string) error { return validationError{msg: msg} }

// IsValidation reports whether err indicates invalid input.
func IsValidation(err error) bool {
	_, ok := err.(validationError)
	return ok
}

// inferenceFailedError signals a failed inference call. The service
// stays ready; only this request failed.
type inferenceFailedError struct {
	service string
	msg     string
}

func (e inferenceFailedError) Error() string {
	return "inference failed: " + e.service + ": " + e.msg
}

// ErrInferenceFailed constructs an inferenceFailedError.
func ErrInferenceFailed(service, msg string) error {
	return inferenceFailedError{service: service, msg: msg}
}

// IsInferenceFailed reports whether err indicates a failed inference call.
func IsInferenceFailed(err error) bool {
	_, ok := err.(inferenceFailedError)
	return ok
}

// busyError signals worker pool saturation, for 429 mapping.
type busyError struct{ service string }

func (e busyError) Error() string { return "too busy: " + e.service }

// ErrBusy constructs a busyError.
func ErrBusy(service string) error { return busyError{service: service} }

// IsBusy reports whether err indicates backpressure (return 429).
func IsBusy(err error) bool {
	_, ok := err.(busyError)
	return ok
}
