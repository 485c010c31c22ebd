package errors

import "fmt"

// Convenience functions for common error patterns

// Project input errors

func PathNotFound(path string) *BuildError {
	return New(CategoryPath, SeverityFatal, fmt.Sprintf("project directory %q does not exist", path)).
		WithContext("path", path)
}

func ConfigError(cause error, path string) *BuildError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "failed to load site configuration").
		WithContext("path", path)
}

// Rendering errors

func LayoutNotFound(layout string) *BuildError {
	return New(CategoryLayout, SeverityFatal, fmt.Sprintf("layout %q not found in theme", layout)).
		WithContext("layout", layout)
}

func IO(cause error, path string) *BuildError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, path).
		WithContext("path", path)
}

func RenderFailed(cause error, subject string) *BuildError {
	return Wrap(cause, CategoryRender, SeverityFatal, fmt.Sprintf("rendering %s failed", subject)).
		WithContext("subject", subject)
}

// Aggregate builds the single failure for a parallel phase from the
// already-joined sibling messages.
func Aggregate(message string) *BuildError {
	return New(CategoryAggregate, SeverityFatal, message)
}
