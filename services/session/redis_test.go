package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"frontdesk/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Minute)
}

func TestRedisGetOrCreateRoundTrip(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	sess, err := store.GetOrCreate(ctx, "CA1", "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, models.StateGreeting, sess.State)

	require.NoError(t, store.Append(ctx, "CA1", models.Turn{Role: models.RoleCaller, Text: "hi"}))
	require.NoError(t, store.Append(ctx, "CA1", models.Turn{Role: models.RoleAssistant, Text: "hello"}))

	history, err := store.History(ctx, "CA1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "hi", history[0].Text)
	assert.Equal(t, "hello", history[1].Text)
}

func TestRedisAppendBeforeCreate(t *testing.T) {
	store := newRedisStore(t)

	err := store.Append(context.Background(), "CA-missing", models.Turn{Role: models.RoleCaller, Text: "hi"})
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestRedisEvict(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	_, err := store.GetOrCreate(ctx, "CA1", "+15551234567")
	require.NoError(t, err)
	require.NoError(t, store.Evict(ctx, "CA1"))

	_, err = store.History(ctx, "CA1")
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestRedisOrderingUnderSequentialAppends(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	_, err := store.GetOrCreate(ctx, "CA1", "+15551234567")
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		require.NoError(t, store.Append(ctx, "CA1", models.Turn{
			Role: models.RoleCaller,
			Text: fmt.Sprintf("t%d", i),
		}))
	}

	history, err := store.History(ctx, "CA1")
	require.NoError(t, err)
	require.Len(t, history, 8)
	for i, turn := range history {
		assert.Equal(t, fmt.Sprintf("t%d", i), turn.Text)
	}
}
