package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Client) {
	mr := miniredis.RunT(t)

	client, err := NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name        string
		url         string
		expectError bool
	}{
		{
			name:        "Valid Redis URL",
			url:         "redis://" + mr.Addr(),
			expectError: false,
		},
		{
			name:        "Invalid URL",
			url:         "invalid://url",
			expectError: true,
		},
		{
			name:        "Empty URL",
			url:         "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.url, "test", nil)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, client)
			} else {
				require.NoError(t, err)
				require.NotNil(t, client)
				assert.NotNil(t, client.KeyBuilder)
				client.Close()
			}
		})
	}
}

func TestClient_GetSet(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "test:key1", "value1", time.Minute))

	val, err := client.Get(ctx, "test:key1")
	require.NoError(t, err)
	assert.Equal(t, "value1", val)
	assert.Greater(t, mr.TTL("test:key1"), time.Duration(0))

	_, err = client.Get(ctx, "test:missing")
	assert.ErrorIs(t, err, Nil)
}

func TestClient_Incr(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	n, err := client.Incr(ctx, "test:version")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = client.Incr(ctx, "test:version")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := mr.Get("test:version")
	require.NoError(t, err)
	assert.Equal(t, "2", got)

	mr.Set("test:not-a-number", "abc")
	_, err = client.Incr(ctx, "test:not-a-number")
	assert.Error(t, err)
}

func TestClient_Health(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	assert.NoError(t, client.Health(ctx))

	mr.Close()
	assert.Error(t, client.Health(ctx))
}

func TestPrefixForLog(t *testing.T) {
	assert.Equal(t, "short", prefixForLog("short"))
	assert.Equal(t, "prod:voting:teams:all:v1…", prefixForLog("prod:voting:teams:all:v1234567"))
}
