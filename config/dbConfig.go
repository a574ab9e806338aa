package database

import (
	"context"
	"sync"
	"time"

	"github.com/MateAKD/Carta_Menu_Backend/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
)

// Client returns the process-wide MongoDB client. The connection is
// established lazily on first use and reused across all requests; it is never
// torn down in normal operation.
func Client() *mongo.Client {
	clientOnce.Do(func() {
		cfg := Load()
		if cfg.MongoURI == "" {
			logger.L().Fatal("MENU_DB is not set in the environment")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		c, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			logger.L().Fatal("failed to connect to MongoDB", zap.Error(err))
		}

		if err := c.Ping(ctx, nil); err != nil {
			logger.L().Fatal("MongoDB is not reachable", zap.Error(err))
		}

		logger.L().Info("connected to MongoDB", zap.String("database", cfg.DBName))
		client = c
	})
	return client
}

// OpenCollection returns a handle to a collection in the application
// database.
func OpenCollection(name string) *mongo.Collection {
	return Client().Database(Load().DBName).Collection(name)
}
