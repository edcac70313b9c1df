package applicant

import "time"

// Stage identifies the workflow phase an applicant is in.
type Stage string

const (
	StageSales      Stage = "SALES"
	StageKYC        Stage = "KYC"
	StageDecisioned Stage = "DECISIONED"
)

// LoanType selects the rate/tenure policy used for eligibility.
type LoanType string

const (
	LoanTypeHome     LoanType = "HOME"
	LoanTypePersonal LoanType = "PERSONAL"
)

// CheckResult is the outcome of a single verification check.
type CheckResult string

const (
	CheckPending CheckResult = "PENDING"
	CheckPassed  CheckResult = "PASSED"
	CheckFailed  CheckResult = "FAILED"
)

// Status is the decision state of an application.
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusApproved    Status = "APPROVED"
	StatusHumanReview Status = "HUMAN_REVIEW"
)

const defaultAge = 30

// Record holds the full state of one loan application. Monetary figures are
// monthly currency units. Pointer fields are unset until the conversation or
// verification supplies them.
type Record struct {
	ApplicantID    string
	Stage          Stage
	LoanType       *LoanType
	Age            int
	DeclaredIncome *float64
	DeclaredEMI    *float64
	LoanAmount     *float64
	MaxEligible    *float64
	VerifiedIncome *float64
	CheckA         CheckResult
	CheckB         CheckResult
	CheckC         CheckResult
	Status         Status
	SanctionLetter string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewRecord returns a record with source defaults for the given applicant.
func NewRecord(applicantID string) Record {
	now := time.Now().UTC()
	return Record{
		ApplicantID: applicantID,
		Stage:       StageSales,
		Age:         defaultAge,
		CheckA:      CheckPending,
		CheckB:      CheckPending,
		CheckC:      CheckPending,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Decided reports whether the application reached a terminal status.
func (r Record) Decided() bool {
	return r.Status == StatusApproved || r.Status == StatusHumanReview
}

// Update is a typed partial update. Only non-nil fields are written; the set
// of updatable columns is fixed here so caller input can never reach the
// persistence layer as a column name.
type Update struct {
	Stage          *Stage
	LoanType       *LoanType
	DeclaredIncome *float64
	DeclaredEMI    *float64
	LoanAmount     *float64
	MaxEligible    *float64
	VerifiedIncome *float64
	CheckA         *CheckResult
	CheckB         *CheckResult
	CheckC         *CheckResult
	Status         *Status
	SanctionLetter *string
}

// Empty reports whether the update carries no fields.
func (u Update) Empty() bool {
	return u.Stage == nil && u.LoanType == nil && u.DeclaredIncome == nil &&
		u.DeclaredEMI == nil && u.LoanAmount == nil && u.MaxEligible == nil &&
		u.VerifiedIncome == nil && u.CheckA == nil && u.CheckB == nil &&
		u.CheckC == nil && u.Status == nil && u.SanctionLetter == nil
}
