package app

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/jwksverify/internal/config"
	"github.com/dropDatabas3/jwksverify/internal/jwks"
)

func testConfig(t *testing.T, providerURL string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.JWKS.ClientID = "client_abc"
	cfg.JWKS.ProviderURL = providerURL
	cfg.JWKS.CacheDir = t.TempDir()
	cfg.JWKS.FetchTimeout = "2s"
	cfg.Metrics.Enabled = false
	require.NoError(t, cfg.Validate())
	return cfg
}

func jwksDocument(priv *rsa.PrivateKey, kid string) []byte {
	doc := map[string]any{"keys": []map[string]any{{
		"kty": "RSA",
		"alg": "RS256",
		"use": "sig",
		"kid": kid,
		"n":   base64.RawURLEncoding.EncodeToString(priv.N.Bytes()),
		"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(priv.E)).Bytes()),
	}}}
	b, _ := json.Marshal(doc)
	return b
}

func TestNew_FetchesOnceAndServes(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	var hits atomic.Int32
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/sso/jwks/client_abc", r.URL.Path)
		_, _ = w.Write(jwksDocument(priv, "abc123"))
	}))
	defer provider.Close()

	cfg := testConfig(t, provider.URL)
	c, err := New(context.Background(), cfg, "test")
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, "abc123", c.Record.KeyID)
	assert.FileExists(t, filepath.Join(cfg.JWKS.CacheDir, "client_abc-jwks.json"))

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodRS256, jwtv5.MapClaims{"sub": "user_1", "exp": time.Now().Add(time.Hour).Unix()})
	tk.Header["kid"] = "abc123"
	raw, err := tk.SignedString(priv)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/verify", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	c.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Segundo arranque: el documento ya está, no hay red.
	c2, err := New(context.Background(), cfg, "test")
	require.NoError(t, err)
	defer c2.Close()
	assert.Equal(t, int32(1), hits.Load())
}

func TestNew_UsesExistingDocumentWithoutNetwork(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	cfg := testConfig(t, "http://127.0.0.1:1")
	path := filepath.Join(cfg.JWKS.CacheDir, jwks.DocumentName(cfg.JWKS.ClientID))
	require.NoError(t, os.WriteFile(path, jwksDocument(priv, "abc123"), 0o600))

	c, err := New(context.Background(), cfg, "")
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, "abc123", c.Record.KeyID)
}

func TestNew_StartupFailures(t *testing.T) {
	t.Run("provider error", func(t *testing.T) {
		provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", http.StatusNotFound)
		}))
		defer provider.Close()

		_, err := New(context.Background(), testConfig(t, provider.URL), "")
		var se *StartupError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "ensure jwks document", se.Step)
		var fe *jwks.FetchError
		require.ErrorAs(t, err, &fe)
	})

	t.Run("empty key set", func(t *testing.T) {
		cfg := testConfig(t, "http://127.0.0.1:1")
		path := filepath.Join(cfg.JWKS.CacheDir, jwks.DocumentName(cfg.JWKS.ClientID))
		require.NoError(t, os.WriteFile(path, []byte(`{"keys":[]}`), 0o600))

		_, err := New(context.Background(), cfg, "")
		require.ErrorIs(t, err, jwks.ErrNoKeys)
	})
}
