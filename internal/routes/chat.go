package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/loan-origin/loan_origin/internal/chat"
)

// RegisterChatRoutes wires the conversational endpoint behind the rate limiter.
func RegisterChatRoutes(r fiber.Router, h *chat.Handler, rateLimiter fiber.Handler) {
	r.Post("/chat", rateLimiter, h.Message)
}
