package jwks

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Requiere un Redis real: REDIS_ADDR=localhost:6379 go test ./internal/jwks/...
func TestRedisStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	prefix := "jwksverify:test:" + uuid.NewString() + ":"
	client := DialRedis(addr, 0)
	store := NewRedisStore(client, prefix)
	defer store.Close()

	name := DocumentName("abc123")
	ok, err := store.Exists(ctx, name)
	require.NoError(t, err)
	require.False(t, ok)

	body := []byte(`{"keys":[{"n":"m","e":"AQAB","kid":"k1"}]}`)
	require.NoError(t, store.Write(ctx, name, body))

	ok, err = store.Exists(ctx, name)
	require.NoError(t, err)
	require.True(t, ok)

	rec, err := Load(ctx, store, name)
	require.NoError(t, err)
	require.Equal(t, "k1", rec.KeyID)

	require.NoError(t, client.Del(ctx, prefix+name).Err())
	ok, err = store.Exists(ctx, name)
	require.NoError(t, err)
	require.False(t, ok)
}
