package watcher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A feed that dies with a transient error must be reopened, not abandoned.
func TestResubscribeReopensFailedFeed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs int32
	run := func(ctx context.Context) error {
		if atomic.AddInt32(&runs, 1) == 1 {
			return errors.New("rpc unavailable")
		}
		<-ctx.Done()
		return ctx.Err()
	}

	w := &Watcher{}
	done := make(chan struct{})
	go func() {
		w.resubscribe(ctx, run)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&runs) >= 2
	}, 5*time.Second, 10*time.Millisecond, "feed was never reopened after the error")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("resubscribe did not stop on context cancellation")
	}
}

func TestResubscribeStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var runs int32
	run := func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return ctx.Err()
	}

	w := &Watcher{}
	done := make(chan struct{})
	go func() {
		w.resubscribe(ctx, run)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("resubscribe kept running after cancellation")
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&runs), int32(1))
}
