package handler

import (
	"aptilab/internal/dto"
	"aptilab/internal/middleware"
	"aptilab/internal/service"
	"aptilab/internal/util"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler serves question sets.
type QuestionHandler struct {
	service service.QuestionService
}

func NewQuestionHandler(service service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// GetQuestions godoc
// @Summary Get questions for a topic
// @Description Returns count questions for topic that user_email has not been served since the last pool reset. In generative mode the response names the model that answered.
// @Tags questions
// @Produce json
// @Param topic query string false "Topic" default(Maths)
// @Param count query int false "Number of questions (1-20)" default(10)
// @Param user_email query string false "Ledger key" default(anonymous)
// @Success 200 {object} dto.QuestionsResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) GetQuestions(c *fiber.Ctx) error {
	query, ok := middleware.QuestionsQueryFrom(c)
	if !ok {
		query = dto.QuestionsQuery{
			Topic:     c.Query("topic"),
			Count:     util.ParseIntDefault(c.Query("count"), 0),
			UserEmail: c.Query("user_email"),
		}
	}

	resp, err := h.service.GetQuestions(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
