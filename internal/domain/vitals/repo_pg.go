package vitals

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const vitCols = `id, owner_id, timestamp, type, value, unit`

func (r *repoPG) Create(ctx context.Context, m *Measurement) error {
	m.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO vitals_records (id, owner_id, timestamp, type, value, unit)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		m.ID, m.OwnerID, m.Timestamp, m.Type, m.Value, m.Unit,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Measurement, error) {
	m, err := scanMeasurement(r.pool.QueryRow(ctx, `SELECT `+vitCols+` FROM vitals_records WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return m, err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM vitals_records WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Measurement, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vitals_records WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+vitCols+` FROM vitals_records WHERE owner_id = $1 ORDER BY timestamp DESC, id DESC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	ms, err := collectMeasurements(rows)
	return ms, total, err
}

func (r *repoPG) ListAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Measurement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+vitCols+` FROM vitals_records WHERE owner_id = $1 ORDER BY timestamp DESC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMeasurements(rows)
}

func scanMeasurement(row pgx.Row) (*Measurement, error) {
	var m Measurement
	err := row.Scan(&m.ID, &m.OwnerID, &m.Timestamp, &m.Type, &m.Value, &m.Unit)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMeasurements(rows pgx.Rows) ([]*Measurement, error) {
	var ms []*Measurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, rows.Err()
}
