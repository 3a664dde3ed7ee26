// Package errors defines domain-specific error types for the ledger.
// Using typed errors (instead of strings) lets the command interpreter and the
// HTTP layer react to specific failures without parsing messages.
//
// Pattern: Sentinel Errors + Custom Error Types
package errors

import (
	"errors"
	"fmt"
)

// Ledger sentinel errors. Value-object parse failures (identifier, branch,
// account type, date, amount) live next to their value objects.
var (
	// Store errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrDuplicateHolderType = errors.New("holder already has an account of this type")
	ErrNoHolderAccounts    = errors.New("holder has no accounts")

	// Balance errors
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Protocol errors
	ErrInvalidCommand = errors.New("invalid command")
)

// Machine-readable codes carried by DomainError.
const (
	CodeMalformedIdentifier = "MALFORMED_IDENTIFIER"
	CodeUnknownBranch       = "UNKNOWN_BRANCH"
	CodeUnknownAccountType  = "UNKNOWN_ACCOUNT_TYPE"
	CodeInvalidDate         = "INVALID_DATE"
	CodeNonNumericAmount    = "NON_NUMERIC_AMOUNT"
	CodeNonPositiveAmount   = "NON_POSITIVE_AMOUNT"
	CodeDuplicateHolderType = "DUPLICATE_HOLDER_TYPE"
	CodeAccountNotFound     = "ACCOUNT_NOT_FOUND"
	CodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	CodeNoHolderAccounts    = "NO_HOLDER_ACCOUNTS"
	CodeInvalidCommand      = "INVALID_COMMAND"
)

// DomainError wraps an error with a code and the human-readable message that
// is shown to the operator.
//
// Pattern: Error Wrapping with Context
type DomainError struct {
	Code    string // Machine-readable error code (e.g., "INSUFFICIENT_FUNDS")
	Message string // Human-readable message, printed as-is by the interpreter
	Err     error  // Underlying error (for error chains)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a field-level validation failure.
type ValidationError struct {
	Field   string // Field name that failed validation
	Message string // What went wrong
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

// BusinessRuleViolation represents a violation of a ledger rule, as opposed to
// malformed input. Example: a second CHECKING account for the same holder.
type BusinessRuleViolation struct {
	Rule    string                 // Rule that was violated (e.g., "ONE_ACCOUNT_PER_TYPE")
	Message string                 // Human-readable explanation
	Context map[string]interface{} // Additional context
	Err     error                  // Sentinel the violation maps to, if any
}

// Error implements the error interface.
func (e BusinessRuleViolation) Error() string {
	return fmt.Sprintf("business rule violation [%s]: %s", e.Rule, e.Message)
}

// Unwrap returns the sentinel error.
func (e BusinessRuleViolation) Unwrap() error {
	return e.Err
}

// Because sets the sentinel the violation maps to.
func (e *BusinessRuleViolation) Because(err error) *BusinessRuleViolation {
	e.Err = err
	return e
}

// NewBusinessRuleViolation creates a new business rule violation error.
func NewBusinessRuleViolation(rule, message string, context map[string]interface{}) *BusinessRuleViolation {
	return &BusinessRuleViolation{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

// Helper functions for common error checking

// IsNotFound checks if an error is an "account not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var valErr ValidationError
	return errors.As(err, &valErr)
}

// IsBusinessRuleViolation checks if an error is a business rule violation.
func IsBusinessRuleViolation(err error) bool {
	var brv *BusinessRuleViolation
	return errors.As(err, &brv)
}

// AsDomainError extracts the outermost DomainError from the chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// CodeOf returns the DomainError code of err, or "" when err carries none.
func CodeOf(err error) string {
	if de, ok := AsDomainError(err); ok {
		return de.Code
	}
	return ""
}
