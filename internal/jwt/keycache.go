package jwt

import (
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dropDatabas3/jwksverify/internal/jwks"
)

// KeyCache memoiza la *rsa.PublicKey construida a partir de un KeyRecord.
// Solo se guardan construcciones exitosas: si el material está corrupto,
// cada request vuelve a reportar el error.
type KeyCache struct {
	c *gocache.Cache
}

// NewKeyCache crea un cache sin expiración ni janitor (el KeyRecord es inmutable).
func NewKeyCache() *KeyCache {
	return &KeyCache{c: gocache.New(gocache.NoExpiration, 0)}
}

// PublicKey devuelve la clave RSA de rec, construyéndola la primera vez.
func (k *KeyCache) PublicKey(rec jwks.KeyRecord) (*rsa.PublicKey, error) {
	cacheKey := rec.KeyID + "|" + rec.Modulus + "|" + rec.Exponent
	if v, ok := k.c.Get(cacheKey); ok {
		if pub, ok := v.(*rsa.PublicKey); ok {
			return pub, nil
		}
	}
	pub, err := RSAPublicKey(rec.Modulus, rec.Exponent)
	if err != nil {
		return nil, err
	}
	k.c.Set(cacheKey, pub, gocache.NoExpiration)
	return pub, nil
}

// Len devuelve cuántas claves hay memoizadas.
func (k *KeyCache) Len() int {
	return k.c.ItemCount()
}

// RSAPublicKey arma una clave pública a partir de n y e en base64url sin padding.
func RSAPublicKey(modulus, exponent string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(modulus)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(exponent)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}
	if len(nb) == 0 {
		return nil, errors.New("empty modulus")
	}
	if len(eb) == 0 || len(eb) > 4 {
		return nil, fmt.Errorf("exponent of %d bytes is not supported", len(eb))
	}

	e := new(big.Int).SetBytes(eb)
	if e.Int64() < 2 {
		return nil, errors.New("exponent must be greater than 1")
	}
	n := new(big.Int).SetBytes(nb)
	if n.Sign() <= 0 {
		return nil, errors.New("modulus must be positive")
	}
	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}
