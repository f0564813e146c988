package preferences

import (
	"context"

	"github.com/pkg/errors"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/infrastructure/database/postgres"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/config"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/pkg/log"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Closer libera a conexão aberta pelo backend, quando houver
type Closer func() error

// NewStore escolhe o backend pelo PREFERENCES_DRIVER
func NewStore(ctx context.Context, cfg *config.Config) (Store, Closer, error) {
	noop := func() error { return nil }

	switch cfg.Preferences.Driver {
	case DriverFile, "":
		store, err := NewFileStore(cfg.Preferences.Dir)
		if err != nil {
			return nil, nil, err
		}
		log.L.WithField("dir", cfg.Preferences.Dir).Info("preferences: usando arquivos locais")
		return store, noop, nil

	case DriverPostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, nil, errors.Wrap(err, "preferences: erro ao conectar no postgres")
		}
		log.L.Info("preferences: usando postgres")
		return NewPostgresStore(conn), conn.Close, nil

	case DriverRedis:
		client, err := NewRedisClient(ctx, cfg.Preferences)
		if err != nil {
			return nil, nil, err
		}
		log.L.WithField("addr", cfg.Preferences.RedisAddr).Info("preferences: usando redis")
		return NewRedisStore(client, cfg.Preferences.KeyPrefix), client.Close, nil

	default:
		return nil, nil, errors.Errorf("preferences: driver desconhecido %q", cfg.Preferences.Driver)
	}
}
