package complaint

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

const cmCols = `id, owner_id, course_id, complaint_text, start_date, status, created_at`

func (r *repoPG) Create(ctx context.Context, cm *Complaint) error {
	cm.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO complaints (id, owner_id, course_id, complaint_text, start_date, status)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		cm.ID, cm.OwnerID, cm.CourseID, cm.ComplaintText, cm.StartDate, cm.Status,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Complaint, error) {
	cm, err := scanComplaint(r.pool.QueryRow(ctx, `SELECT `+cmCols+` FROM complaints WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return cm, err
}

func (r *repoPG) Update(ctx context.Context, cm *Complaint) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE complaints SET course_id=$2, complaint_text=$3, start_date=$4, status=$5
		WHERE id = $1`,
		cm.ID, cm.CourseID, cm.ComplaintText, cm.StartDate, cm.Status,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM complaints WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Complaint, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM complaints WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+cmCols+` FROM complaints WHERE owner_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	cms, err := collectComplaints(rows)
	return cms, total, err
}

func (r *repoPG) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*Complaint, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+cmCols+` FROM complaints WHERE course_id = $1 ORDER BY created_at DESC, id DESC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComplaints(rows)
}

func scanComplaint(row pgx.Row) (*Complaint, error) {
	var cm Complaint
	err := row.Scan(&cm.ID, &cm.OwnerID, &cm.CourseID, &cm.ComplaintText, &cm.StartDate, &cm.Status, &cm.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

func collectComplaints(rows pgx.Rows) ([]*Complaint, error) {
	var cms []*Complaint
	for rows.Next() {
		cm, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		cms = append(cms, cm)
	}
	return cms, rows.Err()
}
