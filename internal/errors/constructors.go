package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *BlogError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *BlogError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Document metadata errors

func MissingTitle(path string) *BlogError {
	return New(CategoryMetadata, SeverityFatal, "post has no title directive").
		WithContext("path", path)
}

func MissingOrInvalidDate(path string, cause error) *BlogError {
	e := New(CategoryMetadata, SeverityFatal, "post has no parseable date directive").
		WithContext("path", path)
	e.Cause = cause
	return e
}

// Render errors

func BodyMarkerNotFound(path string) *BlogError {
	return New(CategoryRender, SeverityFatal, "body markers not found in rendered page").
		WithContext("path", path)
}

func RenderFailed(path string, cause error) *BlogError {
	return Wrap(cause, CategoryRender, SeverityFatal, "markup rendering failed").
		WithContext("path", path)
}

// Filesystem errors

func IOFailure(operation, path string, cause error) *BlogError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", operation).
		WithContext("path", path)
}

// Aggregate errors

func AggregateFailed(name string, cause error) *BlogError {
	return Wrap(cause, CategoryAggregate, SeverityFatal, "aggregate build failed").
		WithContext("aggregate", name)
}
