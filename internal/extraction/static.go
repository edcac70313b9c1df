package extraction

import (
	"context"
	"errors"

	"github.com/loan-origin/loan_origin/internal/applicant"
)

// StaticExtractor returns a canned result. Used in tests and development mode
// where no model credentials are configured.
type StaticExtractor struct {
	Result Result
	Err    error
}

// Extract returns the configured result or error.
func (s StaticExtractor) Extract(_ context.Context, _ applicant.Record, _ string) (Result, error) {
	if s.Err != nil {
		return Result{}, s.Err
	}
	return s.Result, nil
}

// Unavailable builds an extractor that always fails, mimicking an unreachable
// model service.
func Unavailable() StaticExtractor {
	return StaticExtractor{Err: errors.New("extraction service unavailable")}
}
