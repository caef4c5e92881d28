package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"frontdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetOrCreate(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	sess, err := store.GetOrCreate(ctx, "CA1", "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, "CA1", sess.ID)
	assert.Equal(t, "+15551234567", sess.CallerPhone)
	assert.Equal(t, models.StateGreeting, sess.State)
	assert.Empty(t, sess.History)

	require.NoError(t, store.Append(ctx, "CA1", models.Turn{Role: models.RoleCaller, Text: "hi"}))

	again, err := store.GetOrCreate(ctx, "CA1", "+15551234567")
	require.NoError(t, err)
	assert.Len(t, again.History, 1, "subsequent access returns the same session")
}

func TestMemoryAppendBeforeCreate(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()

	err := store.Append(context.Background(), "CA-missing", models.Turn{Role: models.RoleCaller, Text: "hi"})
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestMemoryHistoryPreservesOrder(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	_, err := store.GetOrCreate(ctx, "CA1", "+15551234567")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, store.Append(ctx, "CA1", models.Turn{Role: models.RoleCaller, Text: fmt.Sprintf("t%d", i)}))
	}

	history, err := store.History(ctx, "CA1")
	require.NoError(t, err)
	require.Len(t, history, 10)
	for i, turn := range history {
		assert.Equal(t, fmt.Sprintf("t%d", i), turn.Text)
	}
}

func TestMemoryEvict(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	_, err := store.GetOrCreate(ctx, "CA1", "+15551234567")
	require.NoError(t, err)
	require.NoError(t, store.Evict(ctx, "CA1"))

	_, err = store.History(ctx, "CA1")
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestMemoryConcurrentCallsDoNotInterfere(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	const calls = 20
	const turnsPerCall = 25

	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			callID := fmt.Sprintf("CA%d", i)
			_, err := store.GetOrCreate(ctx, callID, "+15550000000")
			assert.NoError(t, err)
			for j := 0; j < turnsPerCall; j++ {
				assert.NoError(t, store.Append(ctx, callID, models.Turn{
					Role: models.RoleCaller,
					Text: fmt.Sprintf("t%d", j),
				}))
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < calls; i++ {
		history, err := store.History(ctx, fmt.Sprintf("CA%d", i))
		require.NoError(t, err)
		require.Len(t, history, turnsPerCall)
		for j, turn := range history {
			assert.Equal(t, fmt.Sprintf("t%d", j), turn.Text)
		}
	}
}

func TestMemorySetState(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	_, err := store.GetOrCreate(ctx, "CA1", "+15551234567")
	require.NoError(t, err)
	require.NoError(t, store.SetState(ctx, "CA1", models.StateReasoning))

	sess, err := store.GetOrCreate(ctx, "CA1", "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, models.StateReasoning, sess.State)

	assert.ErrorIs(t, store.SetState(ctx, "CA-missing", models.StateListening), ErrUnknownSession)
}
