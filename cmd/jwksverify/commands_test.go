package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/jwksverify/internal/jwks"
)

const testDoc = `{"keys":[{"kty":"RSA","kid":"abc123","n":"sXchWmVnZQ","e":"AQAB"}]}`

func setupEnv(t *testing.T, providerURL string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("JWKS_STORE", "")
	t.Setenv("JWKS_CLIENT_ID", "client_abc")
	t.Setenv("JWKS_PROVIDER_URL", providerURL)
	t.Setenv("JWKS_CACHE_DIR", dir)
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := cmd.Execute()
	return out.String(), err
}

func TestFetch_ThenInspect(t *testing.T) {
	var hits atomic.Int32
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(testDoc))
	}))
	defer provider.Close()
	dir := setupEnv(t, provider.URL)

	out, err := run(t, "fetch")
	require.NoError(t, err)
	assert.Contains(t, out, "kid=abc123")
	assert.FileExists(t, filepath.Join(dir, "client_abc-jwks.json"))

	_, err = run(t, "fetch")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	_, err = run(t, "fetch", "--force")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())

	out, err = run(t, "inspect")
	require.NoError(t, err)
	var rec jwks.KeyRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, jwks.KeyRecord{Modulus: "sXchWmVnZQ", Exponent: "AQAB", KeyID: "abc123"}, rec)
}

func TestInspect_WithoutDocumentFails(t *testing.T) {
	setupEnv(t, "http://127.0.0.1:1")
	_, err := run(t, "inspect")
	require.ErrorIs(t, err, jwks.ErrReadDocument)
}

func TestMissingClientIDFails(t *testing.T) {
	setupEnv(t, "http://127.0.0.1:1")
	require.NoError(t, os.Unsetenv("JWKS_CLIENT_ID"))
	_, err := run(t, "inspect")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "JWKS_CLIENT_ID"))
}
