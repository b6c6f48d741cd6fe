package catalog

// ValidationError indicates user-correctable input; it is never fatal and
// is surfaced back onto the entry form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError indicates a lookup miss. Removal is lenient and does not
// produce it; it exists for callers that resolve a record by id.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

var (
	ErrMissingName = &ValidationError{Message: "missing name"}
	ErrEmptyForm   = &ValidationError{Message: "empty form"}
	ErrNoFile      = &ValidationError{Message: "no file"}
)
