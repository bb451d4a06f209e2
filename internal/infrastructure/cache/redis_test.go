package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// unreachable points at a port nothing listens on so every command fails fast.
func unreachable() *RedisCache {
	return NewRedisCacheFromClient(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	}))
}

func TestDeleteWithoutKeysIsNoop(t *testing.T) {
	c := unreachable()
	defer c.Close()

	assert.NoError(t, c.Delete(context.Background()))
}

func TestUnreachableRedisSurfacesErrors(t *testing.T) {
	c := unreachable()
	defer c.Close()
	ctx := context.Background()

	var dest map[string]string
	found, err := c.Get(ctx, "book:detail:1", &dest)
	assert.False(t, found)
	assert.Error(t, err)

	assert.Error(t, c.Set(ctx, "k", map[string]string{"a": "b"}, time.Minute))
	assert.Error(t, c.Ping(ctx))
	assert.Error(t, c.Connect(ctx))
}
