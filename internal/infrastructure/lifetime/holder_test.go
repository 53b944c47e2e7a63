package lifetime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolder_ReleaseIsIdempotent(t *testing.T) {
	h := NewHolder(context.Background())

	g1 := h.Hold()
	g2 := h.Hold()
	assert.Equal(t, 2, h.Count())

	g1.Release()
	g1.Release()
	assert.Equal(t, 1, h.Count(), "double release must not drop another token")

	g2.Release()
	assert.Equal(t, 0, h.Count())
}

func TestHolder_WaitIdleReturnsWhenNothingHeld(t *testing.T) {
	h := NewHolder(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, h.WaitIdle(ctx, 10*time.Millisecond))
}

func TestHolder_WaitIdleBlocksWhileHeld(t *testing.T) {
	h := NewHolder(context.Background())
	guard := h.Hold()

	done := make(chan error, 1)
	go func() {
		done <- h.WaitIdle(context.Background(), 10*time.Millisecond)
	}()

	select {
	case <-done:
		t.Fatal("WaitIdle returned while a token was held")
	case <-time.After(50 * time.Millisecond):
	}

	guard.Release()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("WaitIdle did not return after release")
	}
}

func TestHolder_WaitIdleHonoursContext(t *testing.T) {
	h := NewHolder(context.Background())
	h.Hold()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, h.WaitIdle(ctx, time.Millisecond), context.Canceled)
}
