package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisClient_SetAndPublish(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(mr.Host(), mr.Port(), "", zap.NewNop())
	require.NotNil(t, client)
	defer client.Close()

	ctx := context.Background()

	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"raw json kept as-is", json.RawMessage(`{"a":[1,2]}`), `{"a":[1,2]}`},
		{"struct encoded", struct {
			N int `json:"n"`
		}{7}, `{"n":7}`},
		{"string quoted", "v", `"v"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, client.Set(ctx, "k", tt.value, time.Minute))
			got, err := mr.Get("k")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.Minute, mr.TTL("k"))
		})
	}

	// No subscribers: publish succeeds and reaches nobody
	assert.NoError(t, client.Publish(ctx, "updates", map[string]int{"n": 1}))
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	// Port 1 is never a redis server in CI
	client := NewRedisClient("127.0.0.1", "1", "", zap.NewNop())
	assert.Nil(t, client)
}

func TestNilClientReturnsErrors(t *testing.T) {
	var client *RedisClient
	ctx := context.Background()

	assert.Error(t, client.Set(ctx, "k", "v", time.Minute))
	assert.Error(t, client.Publish(ctx, "c", "m"))
	assert.NoError(t, client.Close())
}
