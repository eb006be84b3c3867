package session

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"
)

// RedisStore backs the session keys with Redis. Values are kept without an
// expiry; the session outlives process restarts until an explicit logout.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an already-connected Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (rs *RedisStore) Get(key string) ([]byte, error) {
	data, err := rs.client.Get(context.Background(), key).Bytes()
	if err == redis.Nil {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (rs *RedisStore) Set(key string, value []byte) error {
	return rs.client.Set(context.Background(), key, value, 0).Err()
}

func (rs *RedisStore) Delete(key string) error {
	return rs.client.Del(context.Background(), key).Err()
}

// InitRedis connects to Redis with the given options and returns nil when
// the server is unreachable, letting the caller fall back to another store.
func InitRedis(addr, password string, db int) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("[SESSION] Redis connection failed, continuing without Redis: %v", err)
		return nil
	}

	log.Println("[SESSION] Redis connection established")
	return rdb
}
