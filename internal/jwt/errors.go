package jwt

import (
	"errors"
	"fmt"
)

// Tipos de rechazo de Verify. Cada uno mapea a un status HTTP distinto,
// así que no se colapsan en un único error.
var (
	ErrMalformedHeader    = errors.New("invalid token header")
	ErrKeyMismatch        = errors.New("token key ID does not match")
	ErrInvalidKeyMaterial = errors.New("failed to create decoding key")
	ErrInvalidToken       = errors.New("invalid token")
)

// VerifyError envuelve la causa concreta (Err) bajo uno de los Err* (Kind).
type VerifyError struct {
	Kind error
	Err  error
}

func (e *VerifyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *VerifyError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Cause devuelve solo la causa subyacente, sin el prefijo del Kind.
func (e *VerifyError) Cause() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func verifyErr(kind, err error) *VerifyError {
	return &VerifyError{Kind: kind, Err: err}
}
