package photosvc

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/lamms/lamms/core"
	"github.com/lamms/lamms/core/attendance"
)

// PhotosKey is the Redis list holding picture URLs, in student order.
const PhotosKey = "photos"

// Redis serves pictures stored in a Redis list.
type Redis struct {
	client *redis.Client
}

var _ attendance.PhotoProvider = (*Redis)(nil) // interface compliance check

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// NewRedisClient connects to the configured Redis server.
func NewRedisClient(ctx context.Context, conf *core.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Address,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "connecting to redis at %s", conf.Redis.Address)
	}
	return client, nil
}

func (r *Redis) GetData(ctx context.Context) ([]attendance.Photo, error) {
	urls, err := r.client.LRange(ctx, PhotosKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "reading photos from redis")
	}
	photos := make([]attendance.Photo, 0, len(urls))
	for _, u := range urls {
		photos = append(photos, attendance.Photo{ItemImageSrc: u})
	}
	return photos, nil
}

// Seed replaces the stored pictures with `photos`.
func (r *Redis) Seed(ctx context.Context, photos []attendance.Photo) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, PhotosKey)
	for _, p := range photos {
		pipe.RPush(ctx, PhotosKey, p.ItemImageSrc)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "seeding photos")
	}
	return nil
}
