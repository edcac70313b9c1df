package applicant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no record exists for the applicant id.
var ErrNotFound = errors.New("applicant not found")

// Repository persists applicant records.
type Repository interface {
	EnsureExists(ctx context.Context, applicantID string) error
	Get(ctx context.Context, applicantID string) (Record, error)
	ApplyUpdate(ctx context.Context, applicantID string, update Update) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed applicant repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureExists inserts a defaulted record for the applicant if none exists.
// Duplicate creation is a no-op.
func (r *PostgresRepository) EnsureExists(ctx context.Context, applicantID string) error {
	rec := NewRecord(applicantID)
	_, err := r.db.Exec(ctx, `INSERT INTO applicants
        (applicant_id, stage, age, check_a, check_b, check_c, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (applicant_id) DO NOTHING`,
		rec.ApplicantID, rec.Stage, rec.Age, rec.CheckA, rec.CheckB, rec.CheckC,
		rec.Status, rec.CreatedAt, rec.UpdatedAt)
	return err
}

// Get fetches the full record for an applicant.
func (r *PostgresRepository) Get(ctx context.Context, applicantID string) (Record, error) {
	row := r.db.QueryRow(ctx, `SELECT applicant_id, stage, loan_type, age,
        declared_income, declared_emi, loan_amount, max_eligible, verified_income,
        check_a, check_b, check_c, status, COALESCE(sanction_letter_text, ''),
        created_at, updated_at
        FROM applicants WHERE applicant_id = $1`, applicantID)

	var rec Record
	err := row.Scan(&rec.ApplicantID, &rec.Stage, &rec.LoanType, &rec.Age,
		&rec.DeclaredIncome, &rec.DeclaredEMI, &rec.LoanAmount, &rec.MaxEligible,
		&rec.VerifiedIncome, &rec.CheckA, &rec.CheckB, &rec.CheckC, &rec.Status,
		&rec.SanctionLetter, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return rec, nil
}

// ApplyUpdate writes the non-nil fields of update in a single statement.
// An empty update is a no-op.
func (r *PostgresRepository) ApplyUpdate(ctx context.Context, applicantID string, update Update) error {
	if update.Empty() {
		return nil
	}

	set := make([]string, 0, 13)
	args := make([]any, 0, 14)

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Stage != nil {
		add("stage", *update.Stage)
	}
	if update.LoanType != nil {
		add("loan_type", *update.LoanType)
	}
	if update.DeclaredIncome != nil {
		add("declared_income", *update.DeclaredIncome)
	}
	if update.DeclaredEMI != nil {
		add("declared_emi", *update.DeclaredEMI)
	}
	if update.LoanAmount != nil {
		add("loan_amount", *update.LoanAmount)
	}
	if update.MaxEligible != nil {
		add("max_eligible", *update.MaxEligible)
	}
	if update.VerifiedIncome != nil {
		add("verified_income", *update.VerifiedIncome)
	}
	if update.CheckA != nil {
		add("check_a", *update.CheckA)
	}
	if update.CheckB != nil {
		add("check_b", *update.CheckB)
	}
	if update.CheckC != nil {
		add("check_c", *update.CheckC)
	}
	if update.Status != nil {
		add("status", *update.Status)
	}
	if update.SanctionLetter != nil {
		add("sanction_letter_text", *update.SanctionLetter)
	}
	add("updated_at", time.Now().UTC())

	args = append(args, applicantID)
	query := fmt.Sprintf("UPDATE applicants SET %s WHERE applicant_id = $%d",
		strings.Join(set, ", "), len(args))

	cmd, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
