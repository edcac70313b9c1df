package kyc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/loan-origin/loan_origin/internal/applicant"
	"github.com/loan-origin/loan_origin/internal/metrics"
	"github.com/loan-origin/loan_origin/internal/notification"
	"github.com/loan-origin/loan_origin/internal/sanction"
)

// DeferralReason is returned when any check fails and an officer takes over.
const DeferralReason = "Divergence detected. Officer will call in 2 hours."

// ErrAlreadyDecided indicates the application reached a terminal status and
// cannot be re-verified.
var ErrAlreadyDecided = errors.New("application already decided")

// PreconditionError names the field that blocks verification.
type PreconditionError struct {
	Field string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("verification precondition failed: %s", e.Field)
}

// UpstreamError wraps a letter-generation failure after checks passed. The
// record is left untouched so verification can be retried.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("sanction letter generation failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Decision is the outcome of one verification run.
type Decision struct {
	Status applicant.Status
	Checks CheckSet
	Reason string
}

// Service runs KYC verification and records the terminal decision.
type Service struct {
	repo     applicant.Repository
	letters  sanction.LetterWriter
	notifier notification.Notifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewService builds a verification service.
func NewService(repo applicant.Repository, letters sanction.LetterWriter, notifier notification.Notifier, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{repo: repo, letters: letters, notifier: notifier, metrics: m, logger: logger}
}

// RecordVerifiedIncome stores the income figure reported by the external
// verification source. Terminal records reject further intake.
func (s *Service) RecordVerifiedIncome(ctx context.Context, applicantID string, amount float64) error {
	if amount <= 0 {
		return &PreconditionError{Field: "verified_income"}
	}
	rec, err := s.repo.Get(ctx, applicantID)
	if err != nil {
		return err
	}
	if rec.Decided() {
		return ErrAlreadyDecided
	}
	return s.repo.ApplyUpdate(ctx, applicantID, applicant.Update{VerifiedIncome: &amount})
}

// Verify runs the verification checks and persists the decision. All checks
// passing yields APPROVED plus a generated sanction letter; any failure
// yields HUMAN_REVIEW. Either way the decision, check results and letter are
// written in a single update so the record is never half-decided.
func (s *Service) Verify(ctx context.Context, applicantID string) (Decision, error) {
	rec, err := s.repo.Get(ctx, applicantID)
	if err != nil {
		return Decision{}, err
	}
	if rec.Decided() {
		return Decision{}, ErrAlreadyDecided
	}
	if err := verifyPreconditions(rec); err != nil {
		return Decision{}, err
	}

	checks := EvaluateChecks(*rec.DeclaredIncome, *rec.VerifiedIncome)
	stage := applicant.StageDecisioned

	if !checks.AllPassed() {
		status := applicant.StatusHumanReview
		if err := s.repo.ApplyUpdate(ctx, applicantID, applicant.Update{
			Status: &status,
			Stage:  &stage,
			CheckA: &checks.IncomeDivergence,
			CheckB: &checks.CreditBureau,
			CheckC: &checks.Documents,
		}); err != nil {
			return Decision{}, fmt.Errorf("store decision: %w", err)
		}

		s.metrics.Verifications.WithLabelValues(string(status)).Inc()
		s.notify(ctx, notification.KindHumanReview, applicantID, DeferralReason)
		s.logger.Info("verification deferred to officer", slog.String("applicant_id", applicantID))
		return Decision{Status: status, Checks: checks, Reason: DeferralReason}, nil
	}

	letter, err := s.letters.Write(ctx, applicantID, *rec.LoanAmount)
	if err != nil {
		return Decision{}, &UpstreamError{Err: err}
	}

	status := applicant.StatusApproved
	if err := s.repo.ApplyUpdate(ctx, applicantID, applicant.Update{
		Status:         &status,
		Stage:          &stage,
		CheckA:         &checks.IncomeDivergence,
		CheckB:         &checks.CreditBureau,
		CheckC:         &checks.Documents,
		SanctionLetter: &letter,
	}); err != nil {
		return Decision{}, fmt.Errorf("store decision: %w", err)
	}

	s.metrics.Verifications.WithLabelValues(string(status)).Inc()
	s.notify(ctx, notification.KindApproved, applicantID, "Your loan has been sanctioned.")
	s.logger.Info("application approved", slog.String("applicant_id", applicantID))
	return Decision{Status: status, Checks: checks}, nil
}

// SanctionLetter returns the stored letter for an approved application.
func (s *Service) SanctionLetter(ctx context.Context, applicantID string) (string, error) {
	rec, err := s.repo.Get(ctx, applicantID)
	if err != nil {
		return "", err
	}
	if rec.Status != applicant.StatusApproved || rec.SanctionLetter == "" {
		return "", applicant.ErrNotFound
	}
	return rec.SanctionLetter, nil
}

// verifyPreconditions guards the divergence check: declared income, loan
// amount and a strictly positive verified income must be present before any
// arithmetic runs.
func verifyPreconditions(rec applicant.Record) error {
	if rec.DeclaredIncome == nil {
		return &PreconditionError{Field: "declared_income"}
	}
	if rec.LoanAmount == nil {
		return &PreconditionError{Field: "loan_amount"}
	}
	if rec.VerifiedIncome == nil || *rec.VerifiedIncome <= 0 {
		return &PreconditionError{Field: "verified_income"}
	}
	return nil
}

func (s *Service) notify(ctx context.Context, kind, applicantID, body string) {
	if s.notifier == nil {
		return
	}
	_ = s.notifier.Send(ctx, notification.Message{Kind: kind, ApplicantID: applicantID, Body: body})
}
