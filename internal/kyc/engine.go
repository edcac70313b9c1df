package kyc

import (
	"math"

	"github.com/loan-origin/loan_origin/internal/applicant"
)

// incomeDivergenceTolerance is the maximum relative gap between declared and
// verified income. The boundary is inclusive.
const incomeDivergenceTolerance = 0.10

// CheckSet holds the three independent verification results.
type CheckSet struct {
	IncomeDivergence applicant.CheckResult
	CreditBureau     applicant.CheckResult
	Documents        applicant.CheckResult
}

// AllPassed reports whether every check passed.
func (c CheckSet) AllPassed() bool {
	return c.IncomeDivergence == applicant.CheckPassed &&
		c.CreditBureau == applicant.CheckPassed &&
		c.Documents == applicant.CheckPassed
}

// EvaluateChecks runs the verification checks against a declared/verified
// income pair. Callers must guarantee verifiedIncome > 0; the service layer
// enforces that precondition before reaching this function.
//
// The credit-bureau and document checks are extension points: a production
// deployment would replace them with bureau API and document-processing
// integrations. Until then they always pass.
func EvaluateChecks(declaredIncome, verifiedIncome float64) CheckSet {
	divergence := math.Abs(declaredIncome-verifiedIncome) / verifiedIncome

	incomeCheck := applicant.CheckFailed
	if divergence <= incomeDivergenceTolerance {
		incomeCheck = applicant.CheckPassed
	}

	return CheckSet{
		IncomeDivergence: incomeCheck,
		CreditBureau:     applicant.CheckPassed,
		Documents:        applicant.CheckPassed,
	}
}
