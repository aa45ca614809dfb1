package lib

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

const monthStatusTTL = 10 * time.Minute

func monthStatusKey(locationId uint, year, month int, guests uint) string {
	return fmt.Sprintf("avail:month:%d:%04d-%02d:%d", locationId, year, month, guests)
}

// CacheMonthStatus stores a serialized month-status payload. Best effort:
// cache failures only log.
func CacheMonthStatus(locationId uint, year, month int, guests uint, payload string) {
	rd := GetRedisClient()
	if rd == nil {
		return
	}
	key := monthStatusKey(locationId, year, month, guests)
	if err := rd.SetEx(context.Background(), key, payload, monthStatusTTL).Err(); err != nil {
		log.Printf("[redis] Failed to cache %s: %s\n", key, err.Error())
	}
}

// GetCachedMonthStatus returns the cached payload, or "" on miss.
func GetCachedMonthStatus(locationId uint, year, month int, guests uint) string {
	rd := GetRedisClient()
	if rd == nil {
		return ""
	}
	key := monthStatusKey(locationId, year, month, guests)
	val, err := rd.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return ""
	} else if err != nil {
		log.Printf("[redis] Error retrieving %s: %s\n", key, err.Error())
		return ""
	}
	return val
}

// InvalidateMonthStatus drops every cached month-status entry for a location.
// Called after any booking, hours or closure write.
func InvalidateMonthStatus(locationId uint) {
	rd := GetRedisClient()
	if rd == nil {
		return
	}
	ctx := context.Background()
	pattern := fmt.Sprintf("avail:month:%d:*", locationId)
	iter := rd.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := rd.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("[redis] Failed to delete %s: %s\n", iter.Val(), err.Error())
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("[redis] Scan error for %s: %s\n", pattern, err.Error())
	}
}
