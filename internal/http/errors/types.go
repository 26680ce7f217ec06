// Package errors define los errores HTTP del servicio y cómo se escriben.
//
// El contrato público de /verify responde los errores como un string JSON
// ("Missing Authorization header"), no como objeto; Code solo viaja en el
// header X-Error-Code para facilitar métricas y debugging.
package errors

import (
	"fmt"
	"net/http"
)

// AppError es el error estándar de la capa HTTP.
type AppError struct {
	Code       string
	Message    string
	Detail     string
	HTTPStatus int
	Err        error // causa original, solo para logs
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// Body es el texto que ve el cliente: Message, y ": Detail" si hay detalle.
func (e *AppError) Body() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

// New crea un AppError.
func New(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// Wrap crea un AppError envolviendo un error existente.
func Wrap(err error, status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// FromError convierte cualquier error en AppError; lo desconocido es 500.
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrInternalServerError.WithCause(err)
}

// WithDetail devuelve una COPIA con detalle (no muta las variables base).
func (e *AppError) WithDetail(detail string) *AppError {
	newErr := *e
	newErr.Detail = detail
	return &newErr
}

// WithCause devuelve una COPIA con la causa original.
func (e *AppError) WithCause(err error) *AppError {
	newErr := *e
	newErr.Err = err
	return &newErr
}

// ---------------------------------------------------------------------------------
// 400 - request malformado
// ---------------------------------------------------------------------------------

var (
	ErrMissingAuthHeader  = New(http.StatusBadRequest, "MISSING_AUTH_HEADER", "Missing Authorization header")
	ErrInvalidAuthHeader  = New(http.StatusBadRequest, "INVALID_AUTH_HEADER", "Invalid Authorization header")
	ErrInvalidBearer      = New(http.StatusBadRequest, "INVALID_BEARER", "Invalid or missing Bearer token")
	ErrEmptyBearer        = New(http.StatusBadRequest, "EMPTY_BEARER", "Empty Bearer token")
	ErrInvalidTokenHeader = New(http.StatusBadRequest, "INVALID_TOKEN_HEADER", "Invalid token header")
)

// ---------------------------------------------------------------------------------
// 401 - autenticación
// ---------------------------------------------------------------------------------

var (
	ErrKeyMismatch  = New(http.StatusUnauthorized, "KEY_MISMATCH", "Token key ID does not match")
	ErrInvalidToken = New(http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
)

// ---------------------------------------------------------------------------------
// 404 / 405
// ---------------------------------------------------------------------------------

var (
	ErrNotFound         = New(http.StatusNotFound, "NOT_FOUND", "Not found")
	ErrMethodNotAllowed = New(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
)

// ---------------------------------------------------------------------------------
// 5xx - fallas del servidor
// ---------------------------------------------------------------------------------

var (
	ErrDecodingKey         = New(http.StatusInternalServerError, "DECODING_KEY", "Failed to create decoding key")
	ErrInternalServerError = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
	ErrNotReady            = New(http.StatusServiceUnavailable, "NOT_READY", "Service not ready")
)
