package applicant

import (
	"context"
	"sync"
	"time"
)

type memoryRepository struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryRepository builds an in-memory applicant store for tests and
// development mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{records: make(map[string]Record)}
}

func (r *memoryRepository) EnsureExists(_ context.Context, applicantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[applicantID]; exists {
		return nil
	}
	r.records[applicantID] = NewRecord(applicantID)
	return nil
}

func (r *memoryRepository) Get(_ context.Context, applicantID string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[applicantID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *memoryRepository) ApplyUpdate(_ context.Context, applicantID string, update Update) error {
	if update.Empty() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[applicantID]
	if !ok {
		return ErrNotFound
	}

	if update.Stage != nil {
		rec.Stage = *update.Stage
	}
	if update.LoanType != nil {
		lt := *update.LoanType
		rec.LoanType = &lt
	}
	if update.DeclaredIncome != nil {
		v := *update.DeclaredIncome
		rec.DeclaredIncome = &v
	}
	if update.DeclaredEMI != nil {
		v := *update.DeclaredEMI
		rec.DeclaredEMI = &v
	}
	if update.LoanAmount != nil {
		v := *update.LoanAmount
		rec.LoanAmount = &v
	}
	if update.MaxEligible != nil {
		v := *update.MaxEligible
		rec.MaxEligible = &v
	}
	if update.VerifiedIncome != nil {
		v := *update.VerifiedIncome
		rec.VerifiedIncome = &v
	}
	if update.CheckA != nil {
		rec.CheckA = *update.CheckA
	}
	if update.CheckB != nil {
		rec.CheckB = *update.CheckB
	}
	if update.CheckC != nil {
		rec.CheckC = *update.CheckC
	}
	if update.Status != nil {
		rec.Status = *update.Status
	}
	if update.SanctionLetter != nil {
		rec.SanctionLetter = *update.SanctionLetter
	}
	rec.UpdatedAt = time.Now().UTC()

	r.records[applicantID] = rec
	return nil
}
