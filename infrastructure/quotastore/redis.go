package quotastore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

var redisQuotaPrefix = "quota/"

// consumeScript verifica e incrementa em uma única operação atômica no Redis,
// de modo que um INCRBY acima do limite nunca chega a ser gravado.
var consumeScript = redis.NewScript(`
local used = tonumber(redis.call('GET', KEYS[1]) or '0')
local delta = tonumber(ARGV[1])
local limit = tonumber(ARGV[2])
if used + delta > limit then
	return {0, used}
end
used = redis.call('INCRBY', KEYS[1], delta)
if redis.call('PTTL', KEYS[1]) < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[3])
end
return {1, used}
`)

var releaseScript = redis.NewScript(`
local used = tonumber(redis.call('GET', KEYS[1]) or '0')
local delta = tonumber(ARGV[1])
if used <= 0 then
	return 0
end
if delta > used then
	delta = used
end
return redis.call('DECRBY', KEYS[1], delta)
`)

type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	// check redis connection
	if _, err := rdb.Ping(context.TODO()).Result(); err != nil {
		return nil, err
	}
	return &RedisStore{Client: rdb}, nil
}

func (s *RedisStore) Used(ctx context.Context, key string) (int, error) {
	used, err := s.Client.Get(ctx, redisQuotaPrefix+key).Int()
	if err == redis.Nil {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return used, nil
}

func (s *RedisStore) Consume(ctx context.Context, key string, delta, limit int, ttl time.Duration) (int, bool, error) {
	res, err := consumeScript.Run(ctx, s.Client, []string{redisQuotaPrefix + key}, delta, limit, ttl.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, false, err
	}
	if len(res) != 2 {
		return 0, false, fmt.Errorf("unexpected quota script reply: %v", res)
	}
	return int(res[1]), res[0] == 1, nil
}

func (s *RedisStore) Release(ctx context.Context, key string, delta int) (int, error) {
	used, err := releaseScript.Run(ctx, s.Client, []string{redisQuotaPrefix + key}, delta).Int()
	if err != nil {
		return 0, err
	}
	return used, nil
}

func (s *RedisStore) Close() error {
	return s.Client.Close()
}
