package handler

import (
	"net/url"

	"aptilab/internal/domain"
	"aptilab/internal/dto"
	"aptilab/internal/middleware"
	"aptilab/internal/service"
	"aptilab/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ResultHandler handles submissions, result listings and report mails.
type ResultHandler struct {
	results   service.ResultService
	reports   service.ReportService
	validator *validation.Validator
}

func NewResultHandler(results service.ResultService, reports service.ReportService, v *validation.Validator) *ResultHandler {
	return &ResultHandler{results: results, reports: reports, validator: v}
}

// SubmitTest godoc
// @Summary Submit a finished test
// @Description Stores the score of one attempt. The result mail is sent in the background when SMTP is configured.
// @Tags results
// @Accept json
// @Produce json
// @Param request body dto.SubmitTestRequest true "Attempt"
// @Success 200 {object} dto.SubmitTestResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /submit-test [post]
func (h *ResultHandler) SubmitTest(c *fiber.Ctx) error {
	var req dto.SubmitTestRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.results.Submit(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetUserResults godoc
// @Summary Recent results of a user
// @Description Returns the 10 most recent results for email, newest first
// @Tags results
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} dto.ResultsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /user-results/{email} [get]
func (h *ResultHandler) GetUserResults(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("email", c.Params("email"))}
	}
	results, err := h.results.UserResults(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(dto.ResultsResponse{Results: results})
}

// GetMyResults godoc
// @Summary Recent results of the caller
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.ResultsResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /me/results [get]
func (h *ResultHandler) GetMyResults(c *fiber.Ctx) error {
	email := middleware.UserEmailFrom(c)
	if email == "" {
		return domain.NewUnauthorizedError("Token carries no email")
	}
	results, err := h.results.UserResults(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(dto.ResultsResponse{Results: results})
}

// GetAllResults godoc
// @Summary All results
// @Description Returns every stored result, newest first
// @Tags admin
// @Produce json
// @Success 200 {object} dto.ResultsResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/results [get]
func (h *ResultHandler) GetAllResults(c *fiber.Ctx) error {
	results, err := h.results.AllResults(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.ResultsResponse{Results: results})
}

// SendReport godoc
// @Summary Mail the latest result
// @Tags results
// @Accept json
// @Produce json
// @Param request body dto.SendReportRequest true "Recipient"
// @Success 200 {object} dto.SendReportResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /send-report [post]
func (h *ResultHandler) SendReport(c *fiber.Ctx) error {
	var req dto.SendReportRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.CodeInvalidInput, "Invalid request body", err)
	}
	if err := h.reports.SendLatestReport(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.JSON(dto.SendReportResponse{Success: true, Message: "Report email sent."})
}
