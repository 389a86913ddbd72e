package main

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListen_BusyAddressStopsWaiting(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := listen(context.Background(), fiber.New(), busy.Addr().String(), cancel)

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("listen failure did not cancel the wait")
	}

	err, ok := <-errCh
	require.True(t, ok)
	assert.Error(t, err)
}
