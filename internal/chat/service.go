package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/loan-origin/loan_origin/internal/applicant"
	"github.com/loan-origin/loan_origin/internal/eligibility"
	"github.com/loan-origin/loan_origin/internal/extraction"
	"github.com/loan-origin/loan_origin/internal/metrics"
)

// Service runs the sales conversation: it keeps the applicant record current
// with whatever the extractor pulls out of each message and computes the
// eligibility figure once all inputs are known.
type Service struct {
	repo      applicant.Repository
	extractor extraction.Extractor
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewService builds a chat service.
func NewService(repo applicant.Repository, extractor extraction.Extractor, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{repo: repo, extractor: extractor, metrics: m, logger: logger}
}

// HandleMessage processes one inbound applicant message and returns the reply
// text. Extraction failures never surface to the caller; the applicant gets
// the fixed clarifying reply and the record is left untouched.
func (s *Service) HandleMessage(ctx context.Context, applicantID, message string) (string, error) {
	if applicantID == "" {
		return "", fmt.Errorf("applicant id is required")
	}

	if err := s.repo.EnsureExists(ctx, applicantID); err != nil {
		return "", fmt.Errorf("ensure applicant: %w", err)
	}
	rec, err := s.repo.Get(ctx, applicantID)
	if err != nil {
		return "", fmt.Errorf("load applicant: %w", err)
	}

	s.metrics.ChatMessages.Inc()

	result, err := s.extractor.Extract(ctx, rec, message)
	if err != nil {
		s.metrics.ExtractionFailures.Inc()
		s.logger.Warn("extraction failed, using fallback reply",
			slog.String("applicant_id", applicantID), slog.Any("error", err))
		return extraction.FallbackReply, nil
	}

	update := mergeUpdate(result.Fields)
	if !update.Empty() {
		if err := s.repo.ApplyUpdate(ctx, applicantID, update); err != nil {
			return "", fmt.Errorf("store extracted fields: %w", err)
		}
		rec, err = s.repo.Get(ctx, applicantID)
		if err != nil {
			return "", fmt.Errorf("reload applicant: %w", err)
		}
		if err := s.computeEligibilityOnce(ctx, rec); err != nil {
			return "", err
		}
	}

	return result.Reply, nil
}

// computeEligibilityOnce derives the maximum eligible principal when loan
// type, income and EMI are all known. A record with the figure already set is
// never recomputed.
func (s *Service) computeEligibilityOnce(ctx context.Context, rec applicant.Record) error {
	if rec.MaxEligible != nil {
		return nil
	}
	if rec.LoanType == nil || rec.DeclaredIncome == nil || rec.DeclaredEMI == nil {
		return nil
	}

	limit := eligibility.MaxEligible(*rec.DeclaredIncome, *rec.DeclaredEMI, *rec.LoanType)
	stage := applicant.StageKYC
	if err := s.repo.ApplyUpdate(ctx, rec.ApplicantID, applicant.Update{
		MaxEligible: &limit,
		Stage:       &stage,
	}); err != nil {
		return fmt.Errorf("store eligibility: %w", err)
	}

	s.metrics.EligibilityComputed.Inc()
	s.logger.Info("eligibility computed",
		slog.String("applicant_id", rec.ApplicantID),
		slog.String("loan_type", string(*rec.LoanType)),
		slog.Float64("max_eligible", limit))
	return nil
}

func mergeUpdate(fields extraction.Fields) applicant.Update {
	return applicant.Update{
		LoanType:       fields.LoanType,
		DeclaredIncome: fields.Income,
		DeclaredEMI:    fields.ExistingEMI,
		LoanAmount:     fields.LoanAmount,
	}
}
