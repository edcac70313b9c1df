package eligibility

import (
	"math"

	"github.com/loan-origin/loan_origin/internal/applicant"
)

// Policy fixes the annual rate and tenure used to size a loan.
type Policy struct {
	AnnualRate   float64
	TenureMonths int
}

var (
	homePolicy     = Policy{AnnualRate: 0.085, TenureMonths: 240}
	personalPolicy = Policy{AnnualRate: 0.12, TenureMonths: 60}
)

// PolicyFor returns the pricing policy for a loan type. Anything other than
// HOME falls back to the PERSONAL policy.
func PolicyFor(loanType applicant.LoanType) Policy {
	if loanType == applicant.LoanTypeHome {
		return homePolicy
	}
	return personalPolicy
}

// MaxEligible computes the maximum principal an applicant qualifies for.
// At most half of declared income is treated as serviceable EMI; the
// remaining budget is inverted through the standard amortizing-loan annuity
// formula. The result is rounded to 2 decimal places. Pure and deterministic.
func MaxEligible(declaredIncome, declaredEMI float64, loanType applicant.LoanType) float64 {
	budget := declaredIncome*0.5 - declaredEMI
	if budget <= 0 {
		return 0
	}

	policy := PolicyFor(loanType)
	r := policy.AnnualRate / 12
	compound := math.Pow(1+r, float64(policy.TenureMonths))
	principal := budget / (r * compound / (compound - 1))

	return math.Round(principal*100) / 100
}
