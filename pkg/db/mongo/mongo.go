// Package mongo управляет клиентом MongoDB: подключение, проверка, мониторинг пула.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"userdirectory/pkg/logger"
)

// Сообщения логгера.
const (
	LogConnecting      = "connecting to MongoDB"
	LogConnected       = "connected to MongoDB"
	LogClosing         = "disconnecting from MongoDB"
	LogConnectionError = "MongoDB connection closed with error"
	LogPoolCleared     = "MongoDB connection pool cleared"
)

// Сообщения об ошибках.
const (
	ErrConnect    = "failed to connect to MongoDB"
	ErrPing       = "failed to ping MongoDB"
	ErrDisconnect = "failed to disconnect from MongoDB"
)

// Database владеет клиентом и выбранной базой.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// New подключается по uri и проверяет доступность primary.
// Ошибки соединения после старта только логируются монитором пула.
func New(ctx context.Context, uri, database string) (*Database, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogConnecting, zap.String("database", database))

	opts := options.Client().
		ApplyURI(uri).
		SetPoolMonitor(poolMonitor(ctx))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Error(ctx, ErrConnect, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		log.Error(ctx, ErrPing, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPing, err)
	}

	log.Info(ctx, LogConnected)
	return &Database{client: client, db: client.Database(database)}, nil
}

func poolMonitor(ctx context.Context) *event.PoolMonitor {
	log := logger.Log(ctx).With(zap.String("component", "mongo-pool"))
	return &event.PoolMonitor{
		Event: func(e *event.PoolEvent) {
			switch e.Type {
			case event.ConnectionClosed:
				if e.Reason == event.ReasonError {
					log.Error(ctx, LogConnectionError,
						zap.String("address", e.Address),
						zap.Uint64("connection_id", e.ConnectionID))
				}
			case event.PoolCleared:
				log.Warn(ctx, LogPoolCleared, zap.String("address", e.Address))
			}
		},
	}
}

// Collection возвращает коллекцию выбранной базы.
func (d *Database) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Ping проверяет доступность primary.
func (d *Database) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Close отключает клиента.
func (d *Database) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)
	if err := d.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDisconnect, err)
	}
	return nil
}
