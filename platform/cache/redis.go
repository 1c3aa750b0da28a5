package cache

import (
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"
)

// CreateRedisPool dials addr lazily. addr is either host:port or a
// redis:// URL.
func CreateRedisPool(addr string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 60 * time.Second,
		Dial: func() (redis.Conn, error) {
			return dial(addr)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

// CreateRedisConnection dials a single connection outside the pool.
func CreateRedisConnection(addr string) (redis.Conn, error) {
	return dial(addr)
}

func dial(addr string) (redis.Conn, error) {
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		return redis.DialURL(addr)
	}
	return redis.Dial("tcp", addr)
}
