package config

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/bsm/redislock"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

var (
	rdb    *redis.Client
	locker *redislock.Client
)

func GetRedisDB() *redis.Client {
	return rdb
}

// GetRedisLock returns the distributed lock client, or nil when Redis is not
// configured. Callers treat the lock as a best-effort guard.
func GetRedisLock() *redislock.Client {
	return locker
}

func init() {
	godotenv.Load()

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDRESS"))
	if addr == "" {
		// Redis is optional; the sync single-flight guard degrades to
		// unguarded execution without it.
		return
	}

	rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       intFromEnv("REDIS_DB", 0),
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis not reachable at %s: %v (continuing without lock guard)", addr, err)
		rdb = nil
		return
	}
	locker = redislock.New(rdb)
}
