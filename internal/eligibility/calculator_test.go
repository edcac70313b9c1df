package eligibility

import (
	"math"
	"testing"

	"github.com/loan-origin/loan_origin/internal/applicant"
)

func TestMaxEligiblePersonalExactValue(t *testing.T) {
	// budget 50000, r = 0.01, tenure 60 through the annuity inverse.
	got := MaxEligible(100_000, 0, applicant.LoanTypePersonal)
	want := 2_247_751.92
	if math.Abs(got-want) > 0.01 {
		t.Fatalf("expected %.2f, got %.2f", want, got)
	}
}

func TestMaxEligibleHomeExactValue(t *testing.T) {
	// budget 80000, r = 0.085/12, tenure 240.
	got := MaxEligible(200_000, 20_000, applicant.LoanTypeHome)
	want := 9_218_467.19
	if math.Abs(got-want) > 0.01 {
		t.Fatalf("expected %.2f, got %.2f", want, got)
	}
}

func TestMaxEligibleZeroBudget(t *testing.T) {
	cases := []struct {
		name   string
		income float64
		emi    float64
	}{
		{"emi equals half income", 100_000, 50_000},
		{"emi exceeds half income", 100_000, 80_000},
		{"zero income", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MaxEligible(tc.income, tc.emi, applicant.LoanTypePersonal); got != 0 {
				t.Fatalf("expected exactly 0, got %v", got)
			}
		})
	}
}

func TestMaxEligibleMonotonicInEMI(t *testing.T) {
	prev := math.Inf(1)
	for emi := 0.0; emi <= 60_000; emi += 5_000 {
		got := MaxEligible(100_000, emi, applicant.LoanTypeHome)
		if got > prev {
			t.Fatalf("eligibility increased when EMI rose to %v: %v > %v", emi, got, prev)
		}
		prev = got
	}
}

func TestMaxEligibleMonotonicInIncome(t *testing.T) {
	prev := -1.0
	for income := 10_000.0; income <= 200_000; income += 10_000 {
		got := MaxEligible(income, 20_000, applicant.LoanTypePersonal)
		if got < prev {
			t.Fatalf("eligibility decreased when income rose to %v: %v < %v", income, got, prev)
		}
		prev = got
	}
}

func TestPolicyForDefaultsToPersonal(t *testing.T) {
	if p := PolicyFor(applicant.LoanType("")); p != personalPolicy {
		t.Fatalf("expected personal policy for unset loan type, got %+v", p)
	}
	if p := PolicyFor(applicant.LoanTypeHome); p != homePolicy {
		t.Fatalf("expected home policy, got %+v", p)
	}
}
