package middleware

import (
	"aptilab/internal/config"
	"aptilab/internal/dto"
	"aptilab/internal/service"
	"aptilab/internal/util"

	"github.com/gofiber/fiber/v2"
)

// QuestionsQueryKey holds the parsed dto.QuestionsQuery in fiber locals.
const QuestionsQueryKey = "validated_questions_query"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	questions config.QuestionsConfig
}

func NewValidationMiddleware(questions config.QuestionsConfig) *ValidationMiddleware {
	return &ValidationMiddleware{questions: questions}
}

// ValidateQuestionsQuery parses topic, count and user_email of GET /api/questions.
// Unparseable counts fall back to the default; an authenticated caller without
// user_email is keyed by the token email.
func (vm *ValidationMiddleware) ValidateQuestionsQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := dto.QuestionsQuery{
			Topic:     c.Query("topic"),
			Count:     util.ParseIntDefault(c.Query("count"), 0),
			UserEmail: c.Query("user_email"),
		}
		if q.UserEmail == "" {
			q.UserEmail = UserEmailFrom(c)
		}
		c.Locals(QuestionsQueryKey, service.NormalizeQuestionsQuery(q, vm.questions))
		return c.Next()
	}
}

// QuestionsQueryFrom returns the query stored by ValidateQuestionsQuery.
func QuestionsQueryFrom(c *fiber.Ctx) (dto.QuestionsQuery, bool) {
	q, ok := c.Locals(QuestionsQueryKey).(dto.QuestionsQuery)
	return q, ok
}
