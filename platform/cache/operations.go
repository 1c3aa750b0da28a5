package cache

import (
	"github.com/gomodule/redigo/redis"
)

func Del(key string, conn redis.Conn) error {
	_, err := conn.Do("DEL", key)
	return err
}

func Exists(key string, conn redis.Conn) (bool, error) {
	return redis.Bool(conn.Do("EXISTS", key))
}

// HMSET writes several fields of one hash in a single round trip.
func HMSET(key string, fields map[string]interface{}, conn redis.Conn) error {
	if len(fields) == 0 {
		return nil
	}
	_, err := conn.Do("HSET", redis.Args{}.Add(key).AddFlat(fields)...)
	return err
}

// HSETNX reports whether the field was created.
func HSETNX(key string, field string, value interface{}, conn redis.Conn) (bool, error) {
	return redis.Bool(conn.Do("HSETNX", key, field, value))
}

func HGETALL(key string, conn redis.Conn) (map[string]string, error) {
	return redis.StringMap(conn.Do("HGETALL", key))
}
