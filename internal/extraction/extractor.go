package extraction

import (
	"context"

	"github.com/loan-origin/loan_origin/internal/applicant"
)

// FallbackReply is returned to the applicant whenever extraction fails.
const FallbackReply = "I'm processing that. Could you clarify your monthly income?"

// Fields carries the values the sales agent managed to pull out of one
// message. Every field is optional.
type Fields struct {
	LoanType    *applicant.LoanType
	Income      *float64
	ExistingEMI *float64
	LoanAmount  *float64
}

// Empty reports whether nothing was extracted.
func (f Fields) Empty() bool {
	return f.LoanType == nil && f.Income == nil && f.ExistingEMI == nil && f.LoanAmount == nil
}

// Result is one turn of the sales conversation.
type Result struct {
	Reply  string
	Fields Fields
}

// Extractor turns an applicant message into a reply plus structured fields.
// Implementations may fail; callers must degrade to FallbackReply.
type Extractor interface {
	Extract(ctx context.Context, snapshot applicant.Record, message string) (Result, error)
}
