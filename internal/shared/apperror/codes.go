package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInvalidPeriod      = "INVALID_PERIOD"
	CodeMissingTimes       = "MISSING_TIMES"
	CodeScheduleMismatch   = "SCHEDULE_MISMATCH"
	CodeOwnershipViolation = "OWNERSHIP_VIOLATION"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"

	// Server errors (5xx)
	CodeTimeout           = "TIMEOUT"
	CodeDependency        = "DEPENDENCY"
	CodeInternalInvariant = "INTERNAL_INVARIANT"
	CodeInternalError     = "INTERNAL_ERROR"
)
