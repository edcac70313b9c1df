package kyc

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/loan-origin/loan_origin/internal/applicant"
	"github.com/loan-origin/loan_origin/internal/sanction"
)

// Handler exposes verification and sanction-letter endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a KYC HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type verifiedIncomeRequest struct {
	VerifiedIncome float64 `json:"verified_income"`
}

type verifyResponse struct {
	Status   string `json:"status"`
	ViewLink string `json:"view_link,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// RecordIncome stores the externally verified income for an applicant.
func (h *Handler) RecordIncome(c *fiber.Ctx) error {
	applicantID := c.Query("applicantId")
	if applicantID == "" {
		return fiber.NewError(http.StatusBadRequest, "applicantId query parameter is required")
	}

	var req verifiedIncomeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.RecordVerifiedIncome(c.UserContext(), applicantID, req.VerifiedIncome); err != nil {
		return mapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Verify runs the verification engine and reports the decision.
func (h *Handler) Verify(c *fiber.Ctx) error {
	applicantID := c.Query("applicantId")
	if applicantID == "" {
		return fiber.NewError(http.StatusBadRequest, "applicantId query parameter is required")
	}

	decision, err := h.service.Verify(c.UserContext(), applicantID)
	if err != nil {
		return mapError(err)
	}

	if decision.Status == applicant.StatusApproved {
		return c.Status(http.StatusOK).JSON(verifyResponse{
			Status:   string(applicant.StatusApproved),
			ViewLink: fmt.Sprintf("/api/v1/sanction/%s", applicantID),
		})
	}
	return c.Status(http.StatusOK).JSON(verifyResponse{
		Status: "FAILED",
		Reason: decision.Reason,
	})
}

// SanctionLetter renders the stored letter as an HTML document view.
func (h *Handler) SanctionLetter(c *fiber.Ctx) error {
	applicantID := c.Params("applicantId")

	letter, err := h.service.SanctionLetter(c.UserContext(), applicantID)
	if err != nil {
		return mapError(err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(http.StatusOK).SendString(sanction.RenderHTML(letter))
}

// mapError translates domain errors into the HTTP taxonomy: unknown applicant
// 404, missing precondition 422, terminal record 409, letter upstream 502.
func mapError(err error) error {
	var precondition *PreconditionError
	var upstream *UpstreamError

	switch {
	case errors.Is(err, applicant.ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "applicant not found")
	case errors.Is(err, ErrAlreadyDecided):
		return fiber.NewError(http.StatusConflict, "application already decided")
	case errors.As(err, &precondition):
		return fiber.NewError(http.StatusUnprocessableEntity, precondition.Error())
	case errors.As(err, &upstream):
		return fiber.NewError(http.StatusBadGateway, "sanction letter service unavailable")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
