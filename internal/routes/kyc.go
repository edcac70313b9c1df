package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/loan-origin/loan_origin/internal/kyc"
	"github.com/loan-origin/loan_origin/internal/middleware"
)

// RegisterKYCRoutes wires verification and sanction-letter endpoints.
// Verification is the one irreversible operation, so it sits behind the
// Redis-backed idempotency replay when a cache is configured.
func RegisterKYCRoutes(r fiber.Router, h *kyc.Handler, d Deps) {
	r.Post("/kyc/income", h.RecordIncome)

	verify := r.Group("/kyc/verify")
	if d.Cache != nil {
		verify.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}
	verify.Post("", h.Verify)

	r.Get("/sanction/:applicantId", h.SanctionLetter)
}
