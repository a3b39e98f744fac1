package apperror

import "fmt"

// AppError is the single error currency of the core. Stores and the
// normalizer translate database failures into one of these; handlers map it
// to the HTTP envelope via ToHTTP.
type AppError struct {
	Code       string // stable machine code (e.g. OWNERSHIP_VIOLATION)
	Message    string // user-facing message
	HTTPStatus int
	Err        error // wrapped cause, optional
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap supports errors.Is / errors.As over the wrapped cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap attaches code and status to an existing error. Returns nil on nil so
// call sites can wrap unconditionally.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Retriable reports whether the caller may retry the operation. Apenas
// Timeout e Dependency são transitórios.
func Retriable(err error) bool {
	app, ok := err.(*AppError)
	if !ok {
		return false
	}
	return app.Code == CodeTimeout || app.Code == CodeDependency
}
