package shutdown_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdirectory/pkg/shutdown"
)

func TestWaitRunsHooksOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}
	failing := func(context.Context) error {
		calls.Add(1)
		return errors.New("close failed")
	}

	shutdown.Wait(ctx, time.Second, hook, failing, hook)

	assert.Equal(t, int32(3), calls.Load())
}

func TestWaitRunsHooksOnSignal(t *testing.T) {
	called := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		shutdown.Wait(context.Background(), time.Second, func(context.Context) error {
			close(called)
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)

	process, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, process.Signal(syscall.SIGTERM))

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("hook was not called")
	}
	<-done
}

func TestWaitRespectsTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	started := time.Now()
	shutdown.Wait(ctx, 100*time.Millisecond, func(hookCtx context.Context) error {
		select {
		case <-time.After(5 * time.Second):
		case <-hookCtx.Done():
		}
		return hookCtx.Err()
	})

	assert.Less(t, time.Since(started), 2*time.Second)
}
