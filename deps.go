package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Gidy30B/project02-sub000/config"
	"github.com/Gidy30B/project02-sub000/database"
	"github.com/Gidy30B/project02-sub000/database/locks"
	"github.com/Gidy30B/project02-sub000/database/repository"
	"github.com/Gidy30B/project02-sub000/services/schedule"
	"github.com/Gidy30B/project02-sub000/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	storeMongo  = "mongo"
	storeMemory = "memory"
	lockRedis   = "redis"
	lockLocal   = "local"
)

// appDeps holds the wired scheduling service and the clients behind it.
type appDeps struct {
	Service     *schedule.DefaultScheduleService
	Mongo       *repository.MongoScheduleRepo
	MongoClient *mongo.Client
	Redis       *redis.Client
}

func (d *appDeps) Close() {
	if d.Redis != nil {
		_ = d.Redis.Close()
	}
	if d.MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = database.CloseDB(ctx)
	}
}

// buildDeps selects the schedule store and lock backend from cfg.
func buildDeps(cfg config.Config, logger *zap.Logger) (*appDeps, error) {
	deps := &appDeps{}

	var repo repository.ScheduleRepository
	switch cfg.StoreDriver {
	case storeMongo, "":
		client, err := database.InitDB(cfg)
		if err != nil {
			return nil, err
		}
		deps.MongoClient = client
		deps.Mongo = repository.NewMongoScheduleRepo(client.Database(cfg.DatabaseName), cfg.StoreTimeout())
		repo = deps.Mongo
	case storeMemory:
		logger.Warn("Using in-memory schedule store; data is lost on restart")
		repo = repository.NewMemoryScheduleRepo()
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	var locker locks.Locker
	switch cfg.LockDriver {
	case lockRedis, "":
		client, err := utils.NewRedisClient(cfg, cfg.RedisLockDB)
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.Redis = client
		locker = &locks.RedisLocker{
			Client: client,
			TTL:    cfg.LockTTL(),
			Wait:   cfg.LockWait(),
			Logger: logger.Named("locks"),
		}
	case lockLocal:
		locker = locks.NewLocalLocker(cfg.LockWait())
	default:
		deps.Close()
		return nil, fmt.Errorf("unknown LOCK_DRIVER %q", cfg.LockDriver)
	}

	deps.Service = &schedule.DefaultScheduleService{
		Repo:        repo,
		Locks:       locker,
		Logger:      logger.Named("schedule"),
		HorizonDays: cfg.RecurrenceHorizonDays,
		Location:    cfg.Location(),
	}
	return deps, nil
}
