package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthenticated     = NewDomainError("UNAUTHENTICATED", "Authentication required")
	ErrForbidden           = NewDomainError("FORBIDDEN_ROLE", "Access to this resource is forbidden")
	ErrNotOwner            = NewDomainError("NOT_OWNER", "Resource belongs to another user")
	ErrInvalidTransition   = NewDomainError("INVALID_TRANSITION", "Event not allowed in current status")
	ErrTerminalState       = NewDomainError("TERMINAL_STATE", "Entity is in a terminal status")
)
