package preferences

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/config"
)

// RedisStore guarda as preferências em uma chave por dashboard, sem expiração
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisClient conecta no redis configurado e valida com PING
func NewRedisClient(ctx context.Context, cfg config.Preferences) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "preferences: redis indisponível em %s", cfg.RedisAddr)
	}

	return client, nil
}

// NewRedisStore usa prefix:dashboard como chave
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Load(ctx context.Context, dashboard string) (*Preferences, error) {
	payload, err := s.client.Get(ctx, s.key(dashboard)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "preferences: erro ao ler %s", s.key(dashboard))
	}

	return Decode(payload)
}

func (s *RedisStore) Save(ctx context.Context, dashboard string, prefs *Preferences) error {
	payload, err := Encode(prefs)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key(dashboard), payload, 0).Err(); err != nil {
		return errors.Wrapf(err, "preferences: erro ao salvar %s", s.key(dashboard))
	}
	return nil
}

func (s *RedisStore) key(dashboard string) string {
	if s.prefix == "" {
		return dashboard
	}
	return s.prefix + ":" + dashboard
}
