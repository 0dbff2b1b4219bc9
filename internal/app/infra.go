package app

import (
	"context"

	"github.com/Abraxas-365/craftable/logx"

	"multiauth-service/internal/config"
	"multiauth-service/internal/mongo"
	"multiauth-service/internal/redis"
	"multiauth-service/internal/user"
)

type Infra struct {
	Mongo *mongo.Client
	Redis *redis.Client
	Users *user.MongoStore
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	mongoClient, err := mongo.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}

	users := user.NewMongoStore(mongoClient.Database)
	if err := users.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	logx.Info("mongo ready")

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logx.Info("redis ready")

	return &Infra{
		Mongo: mongoClient,
		Redis: redisClient,
		Users: users,
	}, nil
}
