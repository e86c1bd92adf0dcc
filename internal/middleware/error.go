package middleware

import (
	"errors"
	"net/http"

	"aptilab/internal/domain"
	"aptilab/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success bool                     `json:"success"`
	Code    string                   `json:"code"`
	Error   string                   `json:"error"`
	Detail  string                   `json:"detail,omitempty"`
	Status  int                      `json:"status"`
	Errors  []domain.ValidationError `json:"errors,omitempty"`
	Context map[string]interface{}   `json:"context,omitempty"`
}

// ErrorHandler is a centralized error handling middleware
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		resp := BuildErrorResponse(err)
		log := logger.Get().With(
			zap.String("path", c.Path()),
			zap.String("request_id", RequestIDFrom(c)),
			zap.String("code", resp.Code),
			zap.Int("status", resp.Status),
		)
		if resp.Status >= http.StatusInternalServerError {
			log.Error("Request failed", zap.Error(err))
		} else {
			log.Warn("Request rejected", zap.String("error", err.Error()))
		}
		return c.Status(resp.Status).JSON(resp)
	}
}

// BuildErrorResponse converts err into the body rendered to clients.
func BuildErrorResponse(err error) ErrorResponse {
	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		return ErrorResponse{
			Code:   string(domain.CodeValidation),
			Error:  "Request validation failed",
			Detail: validationErrs.Error(),
			Status: http.StatusBadRequest,
			Errors: validationErrs,
		}
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		resp := ErrorResponse{
			Code:   string(domainErr.Code),
			Error:  domainErr.Message,
			Status: StatusForCode(domainErr.Code),
		}
		switch domainErr.Code {
		case domain.CodeStorage, domain.CodeInternal:
			// causes stay in the logs
		case domain.CodeResultNotFound:
			resp.Detail, _ = domainErr.Context["hint"].(string)
		case domain.CodeMailConfig:
			if missing, _ := domainErr.Context["missing"].(string); missing != "" {
				resp.Detail = "Missing SMTP configuration: " + missing
			}
		default:
			resp.Detail = domainErr.Detail()
			if len(domainErr.Context) > 0 {
				resp.Context = domainErr.Context
			}
		}
		return resp
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ErrorResponse{
			Code:   "HTTP_ERROR",
			Error:  fiberErr.Message,
			Status: fiberErr.Code,
		}
	}

	return ErrorResponse{
		Code:   string(domain.CodeInternal),
		Error:  "Internal server error",
		Status: http.StatusInternalServerError,
	}
}

// StatusFor returns the HTTP status err is rendered with.
func StatusFor(err error) int {
	return BuildErrorResponse(err).Status
}

// StatusForCode maps domain error codes to HTTP status codes
func StatusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.CodeValidation, domain.CodeInvalidInput, domain.CodeDuplicateUser:
		return http.StatusBadRequest
	case domain.CodeUnauthorized, domain.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case domain.CodeNotFound, domain.CodeResultNotFound, domain.CodeEmptyTopic:
		return http.StatusNotFound
	case domain.CodeGeneration, domain.CodeInsufficientQuestions:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
