package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestListenForInvalidationAppliesPublishedVersion(t *testing.T) {
	mr := miniredis.RunT(t)

	listenClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = listenClient.Close() })
	listener := NewCache(listenClient, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, listener.ListenForInvalidation(ctx, ""))

	publisher := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = publisher.Close() })

	// Publish inside the poll loop so the assertion does not depend on the
	// subscription being registered before the first message.
	require.Eventually(t, func() bool {
		_ = publisher.Publish(ctx, bumpChannel, "7").Err()
		ver, err := listener.Version(context.Background())
		return err == nil && ver == 7
	}, 2*time.Second, 20*time.Millisecond)
}

func TestListenForInvalidationNilClientIsNoop(t *testing.T) {
	var c *Cache
	require.NoError(t, c.ListenForInvalidation(context.Background(), ""))
	require.NoError(t, NewCache(nil, 0).ListenForInvalidation(context.Background(), ""))
}
