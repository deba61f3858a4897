// Package errors provides custom error types for the tally core.
// All service-layer errors should use AppError so callers can branch on
// stable error codes without parsing messages.
package errors

// AppError represents a structured application error with an error code,
// human-readable message, and optional internal error.
type AppError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Internal error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  sentinel.Message,
		Internal: internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  message,
		Internal: sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput = &AppError{Code: "INVALID_INPUT", Message: "Invalid input"}
	ErrNotFound     = &AppError{Code: "NOT_FOUND", Message: "Resource not found"}
	ErrInternal     = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred"}
)

// Category errors.
var (
	ErrCategoryNotFound  = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found"}
	ErrCategoryProtected = &AppError{Code: "CATEGORY_PROTECTED", Message: "Default categories cannot be deleted"}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A category with this name already exists"}
)

// Rule and limit errors.
var (
	ErrRuleNotFound  = &AppError{Code: "RULE_NOT_FOUND", Message: "Auto-category rule not found"}
	ErrLimitNotFound = &AppError{Code: "LIMIT_NOT_FOUND", Message: "Category limit not found"}
)

// Ledger errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found"}
	ErrBatchNotFound       = &AppError{Code: "BATCH_NOT_FOUND", Message: "Import batch not found"}
)

// Import and persistence errors.
var (
	// ErrParseAbort is returned when the row source itself fails. Individual
	// malformed rows never abort an import; only a fatal read failure does.
	ErrParseAbort = &AppError{Code: "PARSE_ABORT", Message: "Row source failed, import abandoned"}

	// ErrSyncFailure wraps any persistence failure as a single opaque error.
	// The core performs no automatic retry.
	ErrSyncFailure = &AppError{Code: "SYNC_FAILURE", Message: "Failed to persist settings"}
)
