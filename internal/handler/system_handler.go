package handler

import (
	"aptilab/internal/dto"
	"aptilab/internal/middleware"
	"aptilab/internal/service"
	"aptilab/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SystemHandler serves the tutor chat and the health probes.
type SystemHandler struct {
	chat      service.ChatService
	health    service.HealthService
	validator *validation.Validator
}

func NewSystemHandler(chat service.ChatService, health service.HealthService, v *validation.Validator) *SystemHandler {
	return &SystemHandler{chat: chat, health: health, validator: v}
}

// Chatbot godoc
// @Summary Ask the AI tutor
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /chatbot [post]
func (h *SystemHandler) Chatbot(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.chat.Chat(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Health godoc
// @Summary Liveness
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.health.Health(c.UserContext()))
}

// AIHealth godoc
// @Summary Generation backend probe
// @Description Tries each candidate model with a short timeout and reports the first that answers
// @Tags system
// @Produce json
// @Success 200 {object} dto.AIHealthResponse
// @Failure 400 {object} dto.AIHealthResponse
// @Failure 502 {object} dto.AIHealthResponse
// @Router /ai-health [get]
func (h *SystemHandler) AIHealth(c *fiber.Ctx) error {
	resp, err := h.health.AIHealth(c.UserContext())
	if err != nil {
		if resp == nil {
			return err
		}
		return c.Status(middleware.StatusFor(err)).JSON(resp)
	}
	return c.JSON(resp)
}
