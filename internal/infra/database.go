package infra

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"

	"quickbite/internal/config"
	"quickbite/internal/constants"
	"quickbite/internal/log"
)

var (
	dbOnce sync.Once
	db     *mongo.Database
)

func NewDatabaseClient(c context.Context, dbConfig config.Database) *mongo.Database {
	dbOnce.Do(func() {
		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyTag, "main NewDatabaseClient").
			Logger()

		logger = logger.With().Str(log.KeyProcess, "initializing mongoUrl").Logger()
		logger.Info().Msg("initializing mongoUrl")
		mongoUrl := fmt.Sprintf(
			"mongodb://%s:%s@%s:%d/?authSource=admin",
			dbConfig.Username,
			dbConfig.Password,
			dbConfig.Host,
			int(dbConfig.Port),
		)
		if dbConfig.Username == "" {
			mongoUrl = fmt.Sprintf("mongodb://%s:%d", dbConfig.Host, int(dbConfig.Port))
		}
		logger.Info().Msg("initialized mongoUrl")

		logger = logger.With().Str(log.KeyProcess, "connecting to database").Logger()
		logger.Info().Msg("connecting to database")
		clientOptions := options.Client().
			ApplyURI(mongoUrl).
			SetMonitor(otelmongo.NewMonitor())
		client, err := mongo.Connect(c, clientOptions)
		if err != nil {
			err = fmt.Errorf("failed connecting to database with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("connected to database")

		logger = logger.With().Str(log.KeyProcess, "ping db").Logger()
		logger.Info().Msg("ping db")
		err = client.Ping(c, nil)
		if err != nil {
			err = fmt.Errorf("failed ping db with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("successed ping db")

		db = client.Database(dbConfig.Name)

		logger = logger.With().Str(log.KeyProcess, "creating indexes").Logger()
		logger.Info().Msg("creating indexes")
		_, err = db.Collection(constants.CollectionUsers).
			Indexes().
			CreateOne(c, mongo.IndexModel{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			})
		if err != nil {
			err = fmt.Errorf("failed creating users email index with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		_, err = db.Collection(constants.CollectionOrders).
			Indexes().
			CreateOne(c, mongo.IndexModel{
				Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			})
		if err != nil {
			err = fmt.Errorf("failed creating orders index with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("created indexes")
	})
	return db
}
