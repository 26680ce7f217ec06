package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"math/big"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/jwksverify/internal/jwks"
)

type testKey struct {
	priv   *rsa.PrivateKey
	record jwks.KeyRecord
}

func newTestKey(t *testing.T, kid string) testKey {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("gen key: %v", err)
	}
	return testKey{
		priv: priv,
		record: jwks.KeyRecord{
			Modulus:  base64.RawURLEncoding.EncodeToString(priv.N.Bytes()),
			Exponent: base64.RawURLEncoding.EncodeToString(big.NewInt(int64(priv.E)).Bytes()),
			KeyID:    kid,
		},
	}
}

func (k testKey) sign(t *testing.T, kid string, claims jwtv5.MapClaims) string {
	t.Helper()
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodRS256, claims)
	if kid != "" {
		tk.Header["kid"] = kid
	}
	s, err := tk.SignedString(k.priv)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func validClaims(sub string) jwtv5.MapClaims {
	return jwtv5.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(10 * time.Minute).Unix(),
		"iat": time.Now().Unix(),
	}
}
