// Package jwks obtiene, cachea y parsea el key-set (JWKS) del proveedor de identidad.
//
// El flujo de arranque es: Source.Ensure (descarga única si el documento no
// existe en el store) → Load (parseo de keys[0] a un KeyRecord inmutable).
package jwks

import "fmt"

// KeyRecord es la única clave RSA de verificación que usa el proceso.
// Modulus y Exponent van en base64url sin padding, tal cual los publica el proveedor.
type KeyRecord struct {
	Modulus  string `json:"n"`
	Exponent string `json:"e"`
	KeyID    string `json:"kid"`
}

// DocumentName devuelve el nombre determinístico del documento cacheado
// para un client id: "<clientID>-jwks.json".
func DocumentName(clientID string) string {
	return fmt.Sprintf("%s-jwks.json", clientID)
}
