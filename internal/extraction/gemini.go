package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/loan-origin/loan_origin/internal/applicant"
	"github.com/loan-origin/loan_origin/internal/gemini"
)

// GeminiExtractor drives the sales conversation through the generative model.
type GeminiExtractor struct {
	client *gemini.Client
}

// NewGeminiExtractor builds a model-backed extractor.
func NewGeminiExtractor(client *gemini.Client) *GeminiExtractor {
	return &GeminiExtractor{client: client}
}

type modelReply struct {
	Reply         string `json:"reply"`
	ExtractedData struct {
		LoanType    *string  `json:"loan_type"`
		Income      *float64 `json:"income"`
		ExistingEMI *float64 `json:"existing_emi"`
		LoanAmount  *float64 `json:"loan_amount"`
	} `json:"extracted_data"`
}

// Extract sends the message with the current record snapshot as context and
// parses the model's structured JSON reply.
func (e *GeminiExtractor) Extract(ctx context.Context, snapshot applicant.Record, message string) (Result, error) {
	raw, err := e.client.Generate(ctx, message, gemini.GenerateOptions{
		SystemInstruction: salesInstruction(snapshot),
		ResponseJSON:      true,
	})
	if err != nil {
		return Result{}, err
	}

	var reply modelReply
	if err := json.Unmarshal([]byte(gemini.StripCodeFence(raw)), &reply); err != nil {
		return Result{}, fmt.Errorf("decode model reply: %w", err)
	}
	if reply.Reply == "" {
		return Result{}, fmt.Errorf("model reply missing text")
	}

	fields := Fields{
		Income:      reply.ExtractedData.Income,
		ExistingEMI: reply.ExtractedData.ExistingEMI,
		LoanAmount:  reply.ExtractedData.LoanAmount,
	}
	if reply.ExtractedData.LoanType != nil {
		lt, ok := parseLoanType(*reply.ExtractedData.LoanType)
		if ok {
			fields.LoanType = &lt
		}
	}

	return Result{Reply: reply.Reply, Fields: fields}, nil
}

func parseLoanType(raw string) (applicant.LoanType, bool) {
	switch applicant.LoanType(strings.ToUpper(strings.TrimSpace(raw))) {
	case applicant.LoanTypeHome:
		return applicant.LoanTypeHome, true
	case applicant.LoanTypePersonal:
		return applicant.LoanTypePersonal, true
	default:
		return "", false
	}
}

func salesInstruction(snapshot applicant.Record) string {
	var b strings.Builder
	b.WriteString("ROLE: Alex, Sales Officer.\n")
	b.WriteString("CURRENT USER DATA: ")
	b.WriteString(snapshotSummary(snapshot))
	b.WriteString("\nLOGIC:\n")
	b.WriteString("1. Ask Home/Personal loan.\n")
	b.WriteString("2. Ask Monthly Salary & Monthly EMIs.\n")
	b.WriteString("3. Calculate eligibility and ask for desired amount.\n")
	b.WriteString("4. If amount < Max Eligible, move to KYC and ask for: 1 Govt ID, 3 Salary Slips, 6mo Bank Statement.\n")
	b.WriteString(`STRICT JSON OUTPUT: {"reply": "...", "extracted_data": {"loan_type": str, "income": float, "existing_emi": float, "loan_amount": float}}`)
	return b.String()
}

func snapshotSummary(rec applicant.Record) string {
	summary := map[string]any{
		"applicant_id": rec.ApplicantID,
		"stage":        rec.Stage,
		"age":          rec.Age,
	}
	if rec.LoanType != nil {
		summary["loan_type"] = *rec.LoanType
	}
	if rec.DeclaredIncome != nil {
		summary["declared_income"] = *rec.DeclaredIncome
	}
	if rec.DeclaredEMI != nil {
		summary["declared_emi"] = *rec.DeclaredEMI
	}
	if rec.LoanAmount != nil {
		summary["loan_amount"] = *rec.LoanAmount
	}
	if rec.MaxEligible != nil {
		summary["max_eligible"] = *rec.MaxEligible
	}

	encoded, err := json.Marshal(summary)
	if err != nil {
		return "{}"
	}
	return string(encoded)
}
