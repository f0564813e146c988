package preferences

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/infrastructure/database/postgres"
)

const preferencesTable = "dashboard_preferences"

// PostgresStore usa a tabela dashboard_preferences (dashboard PK, payload jsonb, updated_at)
type PostgresStore struct {
	conn postgres.Queryer
	now  func() time.Time
}

func NewPostgresStore(conn postgres.Queryer) *PostgresStore {
	return &PostgresStore{
		conn: conn,
		now:  time.Now,
	}
}

func (s *PostgresStore) Load(ctx context.Context, dashboard string) (*Preferences, error) {
	query, args, err := selectQuery(dashboard)
	if err != nil {
		return nil, err
	}

	var payload []byte
	if err := s.conn.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "preferences: erro ao buscar preferências de %s", dashboard)
	}

	return Decode(payload)
}

func (s *PostgresStore) Save(ctx context.Context, dashboard string, prefs *Preferences) error {
	payload, err := Encode(prefs)
	if err != nil {
		return err
	}

	query, args, err := upsertQuery(dashboard, payload, s.now())
	if err != nil {
		return err
	}

	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "preferences: erro ao salvar preferências de %s", dashboard)
	}
	return nil
}

func selectQuery(dashboard string) (string, []interface{}, error) {
	return squirrel.
		Select("payload").
		From(preferencesTable).
		Where(squirrel.Eq{"dashboard": dashboard}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func upsertQuery(dashboard string, payload []byte, updatedAt time.Time) (string, []interface{}, error) {
	return squirrel.
		Insert(preferencesTable).
		Columns("dashboard", "payload", "updated_at").
		Values(dashboard, string(payload), updatedAt).
		Suffix("ON CONFLICT (dashboard) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
