package repo

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/dme-recommend-service/internal/domain"
)

// PostgresPartnerRepo stores the partner roster as jsonb payloads.
type PostgresPartnerRepo struct {
	Pool *pgxpool.Pool
}

func NewPostgresPartnerRepo(pool *pgxpool.Pool) *PostgresPartnerRepo {
	return &PostgresPartnerRepo{Pool: pool}
}

func (r *PostgresPartnerRepo) Upsert(ctx context.Context, p domain.Partner) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = r.Pool.Exec(ctx, `INSERT INTO partners(partner_id, payload) VALUES($1, $2)
        ON CONFLICT (partner_id) DO UPDATE SET payload = EXCLUDED.payload`, p.PartnerID, raw)
	return err
}

func (r *PostgresPartnerRepo) LoadAll(ctx context.Context, fn func(p domain.Partner) error) error {
	rows, err := r.Pool.Query(ctx, `SELECT payload FROM partners ORDER BY partner_id`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return err
		}
		var p domain.Partner
		if err := json.Unmarshal(raw, &p); err != nil {
			// skip corrupted row
			continue
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	return rows.Err()
}

var _ domain.PartnerRepository = (*PostgresPartnerRepo)(nil)

// PostgresRecommendationStore persists verified recommendations keyed by
// order uid.
type PostgresRecommendationStore struct {
	Pool *pgxpool.Pool
}

func NewPostgresRecommendationStore(pool *pgxpool.Pool) *PostgresRecommendationStore {
	return &PostgresRecommendationStore{Pool: pool}
}

func (s *PostgresRecommendationStore) Save(ctx context.Context, orderUID string, rec domain.Recommendation) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx, `INSERT INTO recommendations(order_uid, payload) VALUES($1, $2)
        ON CONFLICT (order_uid) DO UPDATE SET payload = EXCLUDED.payload`, orderUID, raw)
	return err
}

func (s *PostgresRecommendationStore) Get(ctx context.Context, orderUID string) (domain.Recommendation, bool, error) {
	var raw []byte
	err := s.Pool.QueryRow(ctx, `SELECT payload FROM recommendations WHERE order_uid = $1`, orderUID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Recommendation{}, false, nil
	}
	if err != nil {
		return domain.Recommendation{}, false, err
	}
	var rec domain.Recommendation
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Recommendation{}, false, err
	}
	return rec, true, nil
}

var _ domain.RecommendationStore = (*PostgresRecommendationStore)(nil)

// EnsureSchema creates the required tables if they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS partners (
  partner_id text PRIMARY KEY,
  payload jsonb NOT NULL
);
CREATE TABLE IF NOT EXISTS recommendations (
  order_uid text PRIMARY KEY,
  payload jsonb NOT NULL
);`)
	return err
}
