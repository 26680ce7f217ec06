package jwks

import (
	"errors"
	"fmt"
)

// Causas de ParseError, comparables con errors.Is.
var (
	ErrReadDocument    = errors.New("failed to read JWKS file")
	ErrInvalidJSON     = errors.New("failed to parse JWKS JSON")
	ErrNoKeys          = errors.New("no keys found in JWKS")
	ErrMissingModulus  = errors.New("missing RSA modulus in JWKS")
	ErrMissingExponent = errors.New("missing RSA exponent in JWKS")
	ErrMissingKeyID    = errors.New("missing key ID in JWKS")
)

// Etapas de FetchError.
const (
	StageDownload = "download"
	StageStatus   = "status"
	StageRead     = "read"
	StageWrite    = "write"
)

// FetchError indica que el documento no existía y no se pudo obtener/persistir.
type FetchError struct {
	Stage string
	Err   error
}

func (e *FetchError) Error() string {
	switch e.Stage {
	case StageDownload:
		return fmt.Sprintf("Failed to download JWKS: %v", e.Err)
	case StageStatus:
		return fmt.Sprintf("Unexpected JWKS response: %v", e.Err)
	case StageRead:
		return fmt.Sprintf("Failed to read JWKS response: %v", e.Err)
	case StageWrite:
		return fmt.Sprintf("Failed to write JWKS file: %v", e.Err)
	}
	return fmt.Sprintf("JWKS fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError indica que el documento no produce un KeyRecord utilizable.
// Kind es uno de los Err* de este paquete; Err, si existe, es la causa subyacente.
type ParseError struct {
	Kind error
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}
