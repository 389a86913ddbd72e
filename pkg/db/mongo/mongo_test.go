package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/event"
)

func TestNew_InvalidURI(t *testing.T) {
	db, err := New(context.Background(), "not-a-mongo-uri", "users")
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), ErrConnect)
}

func TestPoolMonitor_HandlesEvents(t *testing.T) {
	monitor := poolMonitor(context.Background())
	require.NotNil(t, monitor)

	events := []*event.PoolEvent{
		{Type: event.ConnectionClosed, Reason: event.ReasonError, Address: "localhost:27017", ConnectionID: 7},
		{Type: event.ConnectionClosed, Reason: event.ReasonIdle, Address: "localhost:27017"},
		{Type: event.PoolCleared, Address: "localhost:27017"},
		{Type: event.ConnectionCreated, Address: "localhost:27017"},
	}

	assert.NotPanics(t, func() {
		for _, e := range events {
			monitor.Event(e)
		}
	})
}
