package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeStorage      ErrorCode = "STORAGE_ERROR"

	// Account errors
	CodeDuplicateUser      ErrorCode = "DUPLICATE_USER"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"

	// Question delivery errors
	CodeEmptyTopic            ErrorCode = "EMPTY_TOPIC"
	CodeGeneration            ErrorCode = "GENERATION_ERROR"
	CodeInsufficientQuestions ErrorCode = "INSUFFICIENT_QUESTIONS"

	// Results and reporting errors
	CodeResultNotFound ErrorCode = "RESULT_NOT_FOUND"
	CodeMailConfig     ErrorCode = "MAIL_CONFIG_ERROR"
	CodeMailSend       ErrorCode = "MAIL_SEND_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a key/value pair that is rendered alongside the error.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Detail returns the message of the underlying cause, if any.
func (e *DomainError) Detail() string {
	if e.Cause == nil {
		return ""
	}
	return e.Cause.Error()
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsCode reports whether err is a DomainError carrying code.
func IsCode(err error, code ErrorCode) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewStorageError(operation string, cause error) *DomainError {
	return NewError(CodeStorage, "Database error", cause).WithContext("operation", operation)
}

func NewDuplicateUserError(email string) *DomainError {
	return NewError(CodeDuplicateUser, "Email already registered", nil).WithContext("email", email)
}

func NewInvalidCredentialsError() *DomainError {
	return NewError(CodeInvalidCredentials, "Invalid email or password", nil)
}

func NewEmptyTopicError(topic string) *DomainError {
	return NewError(CodeEmptyTopic, fmt.Sprintf("No questions available for topic: %s", topic), nil).
		WithContext("topic", topic)
}

func NewGenerationError(message string, cause error) *DomainError {
	return NewError(CodeGeneration, message, cause)
}

// NewInsufficientQuestionsError reports a generation run whose best output
// still held fewer valid questions than requested.
func NewInsufficientQuestionsError(cause error) *DomainError {
	return NewError(CodeInsufficientQuestions, "Failed to generate AI questions", cause)
}

func NewResultNotFoundError(email string) *DomainError {
	return NewError(CodeResultNotFound, "No test results found for this email", nil).
		WithContext("hint", "Complete a test first, then try sending the report again.").
		WithContext("email", email)
}

func NewMailConfigError(missing []string) *DomainError {
	return NewError(CodeMailConfig, "Email service is not configured", nil).
		WithContext("missing", strings.Join(missing, ", "))
}

func NewMailSendError(cause error) *DomainError {
	return NewError(CodeMailSend, "Failed to send report email", cause)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is returned by request validators and rendered as a 400.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

func NewValidationError(message string) ValidationError {
	return ValidationError{Message: message}
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Message: "has an invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("must be between %d and %d", min, max), Value: value}
}
