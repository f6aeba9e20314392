package network

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrUnknownCompany    = errors.New("edge references unknown company")
	ErrNonPositiveAmount = errors.New("debt amount must be positive")
	ErrDuplicateCompany  = errors.New("duplicate company id")
	ErrSelfObligation    = errors.New("company cannot owe itself")
	ErrEmptyNetwork      = errors.New("network has no companies")
)

// MalformedGraphError provides structured error information for network
// construction and loading failures. A malformed graph is fatal: the
// simulation never starts on one.
type MalformedGraphError struct {
	Op        string // Operation that failed (e.g., "build", "load")
	CompanyID uint64 // Offending company id (if applicable)
	EdgeIndex int    // Input position of the offending edge, -1 when absent
	Field     string // Field name (e.g., "amount")
	Cause     error  // Underlying error
	Context   string // Additional context
}

// Error implements the error interface.
func (e *MalformedGraphError) Error() string {
	if e.EdgeIndex >= 0 {
		if e.CompanyID != 0 {
			return fmt.Sprintf("%s edge %d (company %d): %v", e.Op, e.EdgeIndex, e.CompanyID, e.Cause)
		}
		if e.Field != "" {
			return fmt.Sprintf("%s edge %d (field %s): %v", e.Op, e.EdgeIndex, e.Field, e.Cause)
		}
		return fmt.Sprintf("%s edge %d: %v", e.Op, e.EdgeIndex, e.Cause)
	}
	if e.CompanyID != 0 {
		return fmt.Sprintf("%s company %d: %v", e.Op, e.CompanyID, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *MalformedGraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *MalformedGraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// MalformedErrorBuilder provides a fluent interface for building
// MalformedGraphErrors.
type MalformedErrorBuilder struct {
	err MalformedGraphError
}

// NewMalformedError creates a new error builder with the given operation.
func NewMalformedError(op string) *MalformedErrorBuilder {
	return &MalformedErrorBuilder{err: MalformedGraphError{Op: op, EdgeIndex: -1}}
}

// Company records the offending company id.
func (b *MalformedErrorBuilder) Company(id uint64) *MalformedErrorBuilder {
	b.err.CompanyID = id
	return b
}

// Edge records the input position of the offending edge.
func (b *MalformedErrorBuilder) Edge(index int) *MalformedErrorBuilder {
	b.err.EdgeIndex = index
	return b
}

// Field records the offending field name.
func (b *MalformedErrorBuilder) Field(name string) *MalformedErrorBuilder {
	b.err.Field = name
	return b
}

// Context records additional context information.
func (b *MalformedErrorBuilder) Context(ctx string) *MalformedErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *MalformedErrorBuilder) Cause(err error) *MalformedErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the constructed MalformedGraphError.
func (b *MalformedErrorBuilder) Build() *MalformedGraphError {
	return &b.err
}

// Err returns the error as an error interface.
func (b *MalformedErrorBuilder) Err() error {
	return &b.err
}

// IsMalformed returns true if the error is a malformed-graph error.
func IsMalformed(err error) bool {
	var m *MalformedGraphError
	return errors.As(err, &m)
}
