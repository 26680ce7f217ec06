// Package jwt verifica bearer tokens RS256 contra el único KeyRecord cargado al arranque.
package jwt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/jwksverify/internal/jwks"
)

// Algorithm es el único algoritmo aceptado. No hay negociación: "none", HS* y
// cualquier otro alg se rechazan aunque el kid coincida.
const Algorithm = "RS256"

// DefaultLeeway es la tolerancia de reloj sobre exp/nbf.
const DefaultLeeway = 60 * time.Second

// Claims es lo que se devuelve de un token válido. No se persiste.
type Claims struct {
	Subject   string `json:"sub"`
	ExpiresAt int64  `json:"exp"`
}

// tokenClaims distingue sub ausente de sub vacío: "" es un sub válido,
// la ausencia no. El campo sub de RegisteredClaims queda tapado.
type tokenClaims struct {
	jwtv5.RegisteredClaims
	Sub *string `json:"sub"`
}

// Header son los campos del header JOSE que interesan antes de verificar la firma.
type Header struct {
	Alg string `json:"alg"`
	Kid string `json:"kid,omitempty"`
	Typ string `json:"typ,omitempty"`
}

// Option configura un Verifier.
type Option func(*Verifier)

// WithLeeway cambia la tolerancia de reloj (default 60s).
func WithLeeway(d time.Duration) Option {
	return func(v *Verifier) { v.leeway = d }
}

// WithTimeFunc fija el reloj usado para validar exp/nbf.
func WithTimeFunc(f func() time.Time) Option {
	return func(v *Verifier) { v.now = f }
}

// WithKeyCache comparte un KeyCache entre verifiers.
func WithKeyCache(c *KeyCache) Option {
	return func(v *Verifier) { v.keys = c }
}

// Verifier es inmutable después de NewVerifier y seguro para uso concurrente.
type Verifier struct {
	record jwks.KeyRecord
	keys   *KeyCache
	leeway time.Duration
	now    func() time.Time
	parser *jwtv5.Parser
}

// NewVerifier crea un verificador atado a rec.
func NewVerifier(rec jwks.KeyRecord, opts ...Option) *Verifier {
	v := &Verifier{
		record: rec,
		leeway: DefaultLeeway,
		now:    time.Now,
	}
	for _, o := range opts {
		o(v)
	}
	if v.keys == nil {
		v.keys = NewKeyCache()
	}
	v.parser = jwtv5.NewParser(
		jwtv5.WithValidMethods([]string{Algorithm}),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithLeeway(v.leeway),
		jwtv5.WithTimeFunc(v.now),
	)
	return v
}

// KeyID devuelve el kid de la clave confiada.
func (v *Verifier) KeyID() string { return v.record.KeyID }

// DecodeHeader decodifica el header sin verificar la firma.
func (v *Verifier) DecodeHeader(raw string) (Header, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Header{}, errors.New("token contains an invalid number of segments")
	}
	b, err := v.parser.DecodeSegment(parts[0])
	if err != nil {
		return Header{}, fmt.Errorf("could not base64 decode header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(b, &h); err != nil {
		return Header{}, fmt.Errorf("could not JSON decode header: %w", err)
	}
	if h.Alg == "" {
		return Header{}, errors.New("header is missing alg")
	}
	return h, nil
}

// Verify recorre el pipeline completo y corta en el primer fallo:
// header → kid → clave → firma RS256 + claims.
func (v *Verifier) Verify(raw string) (*Claims, error) {
	h, err := v.DecodeHeader(raw)
	if err != nil {
		return nil, verifyErr(ErrMalformedHeader, err)
	}

	if h.Kid == "" || h.Kid != v.record.KeyID {
		return nil, verifyErr(ErrKeyMismatch, nil)
	}

	pub, err := v.keys.PublicKey(v.record)
	if err != nil {
		return nil, verifyErr(ErrInvalidKeyMaterial, err)
	}

	var rc tokenClaims
	tok, err := v.parser.ParseWithClaims(raw, &rc, func(t *jwtv5.Token) (any, error) {
		// WithValidMethods ya filtra, pero el keyfunc no debe entregar la clave
		// RSA a ningún otro método (HS256 con la pública como secreto).
		if _, ok := t.Method.(*jwtv5.SigningMethodRSA); !ok || t.Method.Alg() != Algorithm {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return pub, nil
	})
	if err != nil {
		return nil, verifyErr(ErrInvalidToken, err)
	}
	if !tok.Valid {
		return nil, verifyErr(ErrInvalidToken, errors.New("token is not valid"))
	}
	if rc.Sub == nil {
		return nil, verifyErr(ErrInvalidToken, errors.New("token is missing the sub claim"))
	}

	return &Claims{Subject: *rc.Sub, ExpiresAt: rc.ExpiresAt.Unix()}, nil
}

// CheckKey construye (o toma del cache) la clave pública del KeyRecord.
// Lo usa /readyz para detectar material corrupto sin esperar un request.
func (v *Verifier) CheckKey() error {
	_, err := v.keys.PublicKey(v.record)
	return err
}
