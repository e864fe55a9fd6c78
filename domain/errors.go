package domain

// DomainError represents a domain-specific error
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

var (
	ErrUnauthorized    = NewDomainError("tenant context is required")
	ErrEntityNotFound  = NewDomainError("entity not found")
	ErrNoSignal        = NewDomainError("insufficient data to build a signal")
	ErrInvalidLine     = NewDomainError("invalid purchase order line")
	ErrInvalidPrice    = NewDomainError("price must be greater than zero")
	ErrVersionConflict = NewDomainError("entity was modified concurrently")
	ErrEntityLocked    = NewDomainError("entity is locked by another writer")
)
