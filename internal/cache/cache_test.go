package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClient_DisabledIsAlwaysAMiss(t *testing.T) {
	ctx := context.Background()

	for name, c := range map[string]*Client{"nil": nil, "empty addr": New("", "", 0)} {
		t.Run(name, func(t *testing.T) {
			assert.False(t, c.Enabled())
			assert.NoError(t, c.Set(ctx, "place:1", []byte("x"), time.Minute))

			got, err := c.Get(ctx, "place:1")
			assert.NoError(t, err)
			assert.Nil(t, got)

			var v map[string]string
			assert.False(t, c.GetJSON(ctx, "place:1", &v))
			assert.NoError(t, c.Delete(ctx, "place:1"))
			assert.NoError(t, c.Ping(ctx))
			assert.NoError(t, c.Close())
		})
	}
}

func TestClient_UnreachableRedisFailsSafe(t *testing.T) {
	// Port 1 on loopback refuses connections immediately.
	c := New("127.0.0.1:1", "", 0)
	defer c.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.True(t, c.Enabled())
	assert.Error(t, c.Ping(ctx))
	assert.NoError(t, c.SetJSON(ctx, "place:1", map[string]string{"title": "Loft"}, time.Minute))

	got, err := c.Get(ctx, "place:1")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestClient_SetJSONRejectsUnencodable(t *testing.T) {
	c := New("", "", 0)
	assert.Error(t, c.SetJSON(context.Background(), "k", make(chan int), time.Minute))
}
