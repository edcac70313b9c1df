package kyc

import (
	"context"
	"errors"
	"testing"

	"github.com/loan-origin/loan_origin/internal/applicant"
	"github.com/loan-origin/loan_origin/internal/logging"
	"github.com/loan-origin/loan_origin/internal/metrics"
	"github.com/loan-origin/loan_origin/internal/sanction"
)

func newTestService(t *testing.T, letters sanction.LetterWriter) (*Service, applicant.Repository) {
	t.Helper()
	repo := applicant.NewMemoryRepository()
	svc := NewService(repo, letters, nil, metrics.Nop(), logging.Discard())
	return svc, repo
}

func seedApplicant(t *testing.T, repo applicant.Repository, id string, declared, verified, amount float64) {
	t.Helper()
	ctx := context.Background()
	if err := repo.EnsureExists(ctx, id); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := repo.ApplyUpdate(ctx, id, applicant.Update{
		DeclaredIncome: &declared,
		VerifiedIncome: &verified,
		LoanAmount:     &amount,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestVerifyApproves(t *testing.T) {
	svc, repo := newTestService(t, sanction.StaticWriter{})
	ctx := context.Background()
	seedApplicant(t, repo, "app-1", 100_000, 100_000, 500_000)

	decision, err := svc.Verify(ctx, "app-1")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if decision.Status != applicant.StatusApproved {
		t.Fatalf("expected APPROVED, got %s", decision.Status)
	}

	rec, err := repo.Get(ctx, "app-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Status != applicant.StatusApproved {
		t.Fatalf("expected stored status APPROVED, got %s", rec.Status)
	}
	if rec.SanctionLetter == "" {
		t.Fatalf("expected a sanction letter on approval")
	}
	if rec.Stage != applicant.StageDecisioned {
		t.Fatalf("expected stage DECISIONED, got %s", rec.Stage)
	}
	if rec.CheckA != applicant.CheckPassed || rec.CheckB != applicant.CheckPassed || rec.CheckC != applicant.CheckPassed {
		t.Fatalf("expected all checks PASSED, got %s/%s/%s", rec.CheckA, rec.CheckB, rec.CheckC)
	}
}

func TestVerifyDefersOnDivergence(t *testing.T) {
	svc, repo := newTestService(t, sanction.StaticWriter{})
	ctx := context.Background()
	seedApplicant(t, repo, "app-2", 150_000, 100_000, 500_000)

	decision, err := svc.Verify(ctx, "app-2")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if decision.Status != applicant.StatusHumanReview {
		t.Fatalf("expected HUMAN_REVIEW, got %s", decision.Status)
	}
	if decision.Reason != DeferralReason {
		t.Fatalf("expected deferral reason, got %q", decision.Reason)
	}

	rec, _ := repo.Get(ctx, "app-2")
	if rec.SanctionLetter != "" {
		t.Fatalf("expected no sanction letter on deferral")
	}
	if rec.CheckA != applicant.CheckFailed {
		t.Fatalf("expected income check FAILED, got %s", rec.CheckA)
	}
}

func TestVerifyRejectsTerminalRecord(t *testing.T) {
	svc, repo := newTestService(t, sanction.StaticWriter{})
	ctx := context.Background()
	seedApplicant(t, repo, "app-3", 100_000, 100_000, 500_000)

	if _, err := svc.Verify(ctx, "app-3"); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if _, err := svc.Verify(ctx, "app-3"); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("expected ErrAlreadyDecided, got %v", err)
	}
}

func TestVerifyPreconditions(t *testing.T) {
	svc, repo := newTestService(t, sanction.StaticWriter{})
	ctx := context.Background()

	if _, err := svc.Verify(ctx, "missing"); !errors.Is(err, applicant.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.EnsureExists(ctx, "app-4"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	_, err := svc.Verify(ctx, "app-4")
	var precondition *PreconditionError
	if !errors.As(err, &precondition) {
		t.Fatalf("expected PreconditionError, got %v", err)
	}
	if precondition.Field != "declared_income" {
		t.Fatalf("expected declared_income named, got %s", precondition.Field)
	}

	declared := 100_000.0
	amount := 500_000.0
	zero := 0.0
	if err := repo.ApplyUpdate(ctx, "app-4", applicant.Update{
		DeclaredIncome: &declared,
		LoanAmount:     &amount,
		VerifiedIncome: &zero,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err = svc.Verify(ctx, "app-4")
	if !errors.As(err, &precondition) || precondition.Field != "verified_income" {
		t.Fatalf("expected verified_income precondition, got %v", err)
	}
}

func TestVerifyLetterFailureLeavesRecordUntouched(t *testing.T) {
	svc, repo := newTestService(t, sanction.StaticWriter{Err: errors.New("model down")})
	ctx := context.Background()
	seedApplicant(t, repo, "app-5", 100_000, 100_000, 500_000)

	_, err := svc.Verify(ctx, "app-5")
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}

	rec, _ := repo.Get(ctx, "app-5")
	if rec.Status != applicant.StatusPending {
		t.Fatalf("expected status still PENDING, got %s", rec.Status)
	}
	if rec.CheckA != applicant.CheckPending {
		t.Fatalf("expected checks untouched, got %s", rec.CheckA)
	}
	if rec.SanctionLetter != "" {
		t.Fatalf("expected no letter stored")
	}

	// The failure is retryable once the letter service recovers.
	svc2 := NewService(repo, sanction.StaticWriter{}, nil, metrics.Nop(), logging.Discard())
	decision, err := svc2.Verify(ctx, "app-5")
	if err != nil {
		t.Fatalf("retry verify: %v", err)
	}
	if decision.Status != applicant.StatusApproved {
		t.Fatalf("expected APPROVED on retry, got %s", decision.Status)
	}
}

func TestRecordVerifiedIncome(t *testing.T) {
	svc, repo := newTestService(t, sanction.StaticWriter{})
	ctx := context.Background()

	if err := svc.RecordVerifiedIncome(ctx, "nobody", 50_000); !errors.Is(err, applicant.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.EnsureExists(ctx, "app-6"); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	var precondition *PreconditionError
	if err := svc.RecordVerifiedIncome(ctx, "app-6", 0); !errors.As(err, &precondition) {
		t.Fatalf("expected PreconditionError for zero income, got %v", err)
	}

	if err := svc.RecordVerifiedIncome(ctx, "app-6", 95_000); err != nil {
		t.Fatalf("record income: %v", err)
	}
	rec, _ := repo.Get(ctx, "app-6")
	if rec.VerifiedIncome == nil || *rec.VerifiedIncome != 95_000 {
		t.Fatalf("expected verified income stored, got %+v", rec.VerifiedIncome)
	}
}

func TestSanctionLetterOnlyWhenApproved(t *testing.T) {
	svc, repo := newTestService(t, sanction.StaticWriter{})
	ctx := context.Background()
	seedApplicant(t, repo, "app-7", 100_000, 100_000, 500_000)

	if _, err := svc.SanctionLetter(ctx, "app-7"); !errors.Is(err, applicant.ErrNotFound) {
		t.Fatalf("expected not found before approval, got %v", err)
	}

	if _, err := svc.Verify(ctx, "app-7"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	letter, err := svc.SanctionLetter(ctx, "app-7")
	if err != nil {
		t.Fatalf("letter: %v", err)
	}
	if letter == "" {
		t.Fatalf("expected letter text")
	}
}
