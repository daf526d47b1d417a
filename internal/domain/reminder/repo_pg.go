package reminder

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

const rmCols = `id, owner_id, title, time_of_day, days_of_week, is_active, created_at`

func (r *repoPG) Create(ctx context.Context, rm *Reminder) error {
	rm.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reminders (id, owner_id, title, time_of_day, days_of_week, is_active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		rm.ID, rm.OwnerID, rm.Title, rm.TimeOfDay, rm.DaysOfWeek, rm.IsActive,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Reminder, error) {
	rm, err := scanReminder(r.pool.QueryRow(ctx, `SELECT `+rmCols+` FROM reminders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rm, err
}

func (r *repoPG) Update(ctx context.Context, rm *Reminder) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE reminders SET title=$2, time_of_day=$3, days_of_week=$4, is_active=$5
		WHERE id = $1`,
		rm.ID, rm.Title, rm.TimeOfDay, rm.DaysOfWeek, rm.IsActive,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Reminder, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+rmCols+` FROM reminders WHERE owner_id = $1 ORDER BY time_of_day ASC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rms []*Reminder
	for rows.Next() {
		rm, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		rms = append(rms, rm)
	}
	return rms, rows.Err()
}

func scanReminder(row pgx.Row) (*Reminder, error) {
	var rm Reminder
	err := row.Scan(&rm.ID, &rm.OwnerID, &rm.Title, &rm.TimeOfDay, &rm.DaysOfWeek, &rm.IsActive, &rm.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}
