package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
	"github.com/jhoicas/tevo-storefront/pkg/config"
)

var _ repository.KeyValueStore = (*RedisStore)(nil)

const (
	redisKeyPrefix     = "storefront:kv:"
	redisChannelPrefix = "storefront:changes:"
)

// redisChange mensaje publicado en el canal de cambios de cada clave.
type redisChange struct {
	Deleted bool   `json:"deleted"`
	Value   []byte `json:"value,omitempty"`
}

// RedisStore comparte token y carritos entre varias instancias de la app shell; los
// cambios se propagan por Pub/Sub, de modo que todas las instancias ven el mismo estado.
type RedisStore struct {
	db *redis.Client
}

// NewRedisStore abre la conexión y verifica con PING.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	const op = "storage.NewRedisStore"
	db := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &RedisStore{db: db}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const op = "storage.RedisStore.Get"
	val, err := s.db.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	const op = "storage.RedisStore.Set"
	msg, err := json.Marshal(redisChange{Value: value})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = s.db.Pipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, redisKeyPrefix+key, value, 0)
		p.Publish(ctx, redisChannelPrefix+key, msg)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	const op = "storage.RedisStore.Delete"
	n, err := s.db.Del(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return nil
	}
	msg, _ := json.Marshal(redisChange{Deleted: true})
	if err := s.db.Publish(ctx, redisChannelPrefix+key, msg).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Watch se suscribe al canal de la clave y espera la confirmación antes de devolver, así
// ningún cambio posterior a la llamada se pierde.
func (s *RedisStore) Watch(ctx context.Context, key string) (<-chan repository.Change, error) {
	const op = "storage.RedisStore.Watch"
	sub := s.db.Subscribe(ctx, redisChannelPrefix+key)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make(chan repository.Change, watchBuffer)
	msgs := sub.Channel()
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					return
				}
				var rc redisChange
				if err := json.Unmarshal([]byte(m.Payload), &rc); err != nil {
					continue
				}
				select {
				case out <- repository.Change{Key: key, Value: rc.Value, Deleted: rc.Deleted}:
				default:
				}
			}
		}
	}()
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.db.Close()
}
