package installer

// dependencyUnavailableError signals that a runtime package could not be
// installed (pip failed or is missing) so callers can surface 503.
type dependencyUnavailableError struct {
	pkg string
	msg string
}

func (e dependencyUnavailableError) Error() string {
	return "dependency unavailable: " + e.pkg + ": " + e.msg
}

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(pkg, msg string) error {
	return dependencyUnavailableError{pkg: pkg, msg: msg}
}

// IsDependencyUnavailable reports whether err indicates a package that
// could not be installed.
func IsDependencyUnavailable(err error) bool {
	_, ok := err.(dependencyUnavailableError)
	return ok
}

// importFailedError signals a package that installed cleanly but still
// cannot be imported, which usually means a broken native wheel.
type importFailedError struct {
	pkg string
	msg string
}

func (e importFailedError) Error() string {
	return "import check failed: " + e.pkg + ": " + e.msg
}

// ErrImportFailed constructs an importFailedError.
func ErrImportFailed(pkg, msg string) error {
	return importFailedError{pkg: pkg, msg: msg}
}

// IsImportFailed reports whether err indicates a post-install import failure.
func IsImportFailed(err error) bool {
	_, ok := err.(importFailedError)
	return ok
}
