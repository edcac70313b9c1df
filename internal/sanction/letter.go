package sanction

import (
	"context"
	"fmt"

	"github.com/loan-origin/loan_origin/internal/gemini"
)

// LetterWriter produces the sanction letter text issued on approval.
type LetterWriter interface {
	Write(ctx context.Context, applicantID string, loanAmount float64) (string, error)
}

// GeminiWriter generates the letter through the generative model.
type GeminiWriter struct {
	client *gemini.Client
}

// NewGeminiWriter builds a model-backed letter writer.
func NewGeminiWriter(client *gemini.Client) *GeminiWriter {
	return &GeminiWriter{client: client}
}

// Write asks the model for a sanction letter covering the approved amount.
func (w *GeminiWriter) Write(ctx context.Context, applicantID string, loanAmount float64) (string, error) {
	prompt := fmt.Sprintf("Write a sanction letter for %s for %.2f.", applicantID, loanAmount)
	text, err := w.client.Generate(ctx, prompt, gemini.GenerateOptions{})
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("model returned empty letter")
	}
	return text, nil
}

// StaticWriter issues a fixed-format letter without calling the model. Used
// in tests and development mode.
type StaticWriter struct {
	Err error
}

// Write renders a plain template letter or fails with the configured error.
func (w StaticWriter) Write(_ context.Context, applicantID string, loanAmount float64) (string, error) {
	if w.Err != nil {
		return "", w.Err
	}
	return fmt.Sprintf("Dear %s, your loan of %.2f has been sanctioned.", applicantID, loanAmount), nil
}
