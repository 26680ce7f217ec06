package logger

import (
	"go.uber.org/zap"
)

// Field es un alias para que los callers no importen zap directamente.
type Field = zap.Field

// =================================================================================
// CAMPOS ESTÁNDAR - HTTP
// =================================================================================

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func DurationMs(v int64) zap.Field { return zap.Int64("duration_ms", v) }
func Bytes(v int) zap.Field        { return zap.Int("bytes", v) }
func ClientIP(v string) zap.Field  { return zap.String("client_ip", v) }

// =================================================================================
// CAMPOS ESTÁNDAR - JWKS / TOKENS
// =================================================================================

// ClientID identifica el key-set del proveedor (JWKS_CLIENT_ID).
func ClientID(v string) zap.Field { return zap.String("client_id", v) }

// KeyID crea un campo para el kid de la clave cargada o del token.
func KeyID(v string) zap.Field { return zap.String("kid", v) }

// Subject crea un campo para el sub de un token verificado.
func Subject(v string) zap.Field { return zap.String("sub", v) }

// Reason describe por qué se rechazó un token (malformed_header, key_mismatch...).
func Reason(v string) zap.Field { return zap.String("reason", v) }

// Source indica de dónde salió el documento JWKS (cache | remote).
func Source(v string) zap.Field { return zap.String("source", v) }

// File crea un campo para una ruta de archivo o clave de store.
func File(v string) zap.Field { return zap.String("file", v) }

// =================================================================================
// CAMPOS ESTÁNDAR - SISTEMA
// =================================================================================

func Component(v string) zap.Field { return zap.String("component", v) }
func Op(v string) zap.Field        { return zap.String("op", v) }
func Layer(v string) zap.Field     { return zap.String("layer", v) }
func Err(err error) zap.Field      { return zap.Error(err) }

// Any crea un campo genérico para cualquier tipo.
func Any(key string, v any) zap.Field { return zap.Any(key, v) }
