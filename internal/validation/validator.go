package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"aptilab/internal/domain"
	"aptilab/internal/dto"

	"github.com/go-playground/validator/v10"
)

// Validator provides request validation functionality
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a validator that reports fields by their JSON names.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterStructValidation(submitTestStructLevel, dto.SubmitTestRequest{})
	return &Validator{v: v}
}

// Struct validates s and returns domain.ValidationErrors, or nil when s is valid.
func (val *Validator) Struct(s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{domain.NewValidationError(err.Error())}
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, toDomainError(fe))
	}
	return out
}

func toDomainError(fe validator.FieldError) domain.ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(field)
	case "email":
		return domain.NewInvalidFormatError(field, fe.Value())
	case "max":
		return domain.ValidationError{Field: field, Message: fmt.Sprintf("must be at most %s", fe.Param())}
	case "gt", "gte", "min":
		return domain.ValidationError{Field: field, Message: fmt.Sprintf("must be %s %s", comparison(fe.Tag()), fe.Param()), Value: fe.Value()}
	case "ltefield":
		return domain.ValidationError{Field: field, Message: fmt.Sprintf("must not exceed %s", fe.Param()), Value: fe.Value()}
	default:
		return domain.ValidationError{Field: field, Message: fmt.Sprintf("failed %s validation", fe.Tag())}
	}
}

func comparison(tag string) string {
	if tag == "gt" {
		return "greater than"
	}
	return "at least"
}

func submitTestStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.SubmitTestRequest)
	if req.Score != nil && req.TotalQuestions > 0 && *req.Score > req.TotalQuestions {
		sl.ReportError(*req.Score, "score", "Score", "ltefield", "total_questions")
	}
}
