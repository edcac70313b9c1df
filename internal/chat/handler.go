package chat

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the chat endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a chat HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type chatRequest struct {
	ApplicantID string `json:"applicant_id"`
	Message     string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Message handles one conversational turn.
func (h *Handler) Message(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.ApplicantID == "" {
		return fiber.NewError(http.StatusBadRequest, "applicant_id is required")
	}

	reply, err := h.service.HandleMessage(c.UserContext(), req.ApplicantID, req.Message)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(chatResponse{Reply: reply})
}
