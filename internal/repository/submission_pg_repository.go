package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ack-hub/internal/domain"
)

const submissionColumns = `id, acknowledgment_type_id, type_title, employee_name, employee_email, request_number,
               submitted_at_date, submitted_at, acknowledged, unit, supervisor_email`

type pgSubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewPgSubmissionRepository builds a Postgres-backed submission store.
func NewPgSubmissionRepository(pool *pgxpool.Pool) SubmissionRepository {
	return &pgSubmissionRepository{pool: pool}
}

func (r *pgSubmissionRepository) Create(ctx context.Context, sub *domain.Submission) error {
	const query = `
        INSERT INTO submissions (` + submissionColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.pool.Exec(ctx, query,
		sub.ID,
		sub.AcknowledgmentTypeID,
		sub.TypeTitle,
		sub.EmployeeName,
		sub.EmployeeEmail,
		sub.RequestNumber,
		sub.SubmittedAtDate,
		sub.SubmittedAt,
		sub.Acknowledged,
		sub.Unit,
		sub.SupervisorEmail,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateID
	}
	return err
}

func (r *pgSubmissionRepository) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id=$1`
	return scanSubmission(r.pool.QueryRow(ctx, query, id))
}

func (r *pgSubmissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]domain.Submission, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Unit != nil {
		args = append(args, *filter.Unit)
		clauses = append(clauses, fmt.Sprintf("unit=$%d", len(args)))
	}
	if filter.Employee != nil {
		args = append(args, filter.Employee.Email, filter.Employee.Name)
		clauses = append(clauses, fmt.Sprintf(
			"((employee_email <> '' AND LOWER(employee_email)=LOWER($%d)) OR (employee_email = '' AND employee_name=$%d))",
			len(args)-1, len(args)))
	}

	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE ` +
		strings.Join(clauses, " AND ") + ` ORDER BY seq`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

func scanSubmission(row pgx.Row) (*domain.Submission, error) {
	var sub domain.Submission
	if err := row.Scan(
		&sub.ID,
		&sub.AcknowledgmentTypeID,
		&sub.TypeTitle,
		&sub.EmployeeName,
		&sub.EmployeeEmail,
		&sub.RequestNumber,
		&sub.SubmittedAtDate,
		&sub.SubmittedAt,
		&sub.Acknowledged,
		&sub.Unit,
		&sub.SupervisorEmail,
	); err != nil {
		return nil, err
	}
	sub.SubmittedAt = sub.SubmittedAt.UTC()
	return &sub, nil
}
