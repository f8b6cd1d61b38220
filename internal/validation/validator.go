// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/gamegraph/internal/models"
)

// CodeValidation is the API error code for rejected parameters.
const CodeValidation = "VALIDATION_ERROR"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes one field that failed validation.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Value   interface{}
	Message string
}

// RequestValidationError collects the field errors of one request.
type RequestValidationError struct {
	Fields []FieldError
}

// Error joins the field messages.
func (ve *RequestValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.Fields))
	for i, f := range ve.Fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// ToAPIError converts the failure into the response envelope's error payload.
func (ve *RequestValidationError) ToAPIError() *models.APIError {
	apiErr := &models.APIError{Code: CodeValidation, Message: ve.Error()}

	switch len(ve.Fields) {
	case 0:
		apiErr.Message = "Validation failed"
	case 1:
		f := ve.Fields[0]
		apiErr.Details = map[string]interface{}{
			"field": f.Field,
			"tag":   f.Tag,
			"value": f.Value,
		}
	default:
		fields := make([]map[string]interface{}, len(ve.Fields))
		for i, f := range ve.Fields {
			fields[i] = map[string]interface{}{
				"field":   f.Field,
				"tag":     f.Tag,
				"message": f.Message,
			}
		}
		apiErr.Details = map[string]interface{}{"fields": fields}
	}
	return apiErr
}

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// report query parameter names instead of Go field names
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})

		if err := validate.RegisterValidation("userid", validateUserID); err != nil {
			panic(fmt.Sprintf("validation: register userid: %v", err))
		}
	})
	return validate
}

// maxUserIDLen bounds user ids. Steam ids are 17 digits; imported cache
// files may carry other keys.
const maxUserIDLen = 64

// validateUserID accepts 1 to maxUserIDLen visible ASCII characters.
func validateUserID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if id == "" || len(id) > maxUserIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}

// ValidateStruct validates s and returns nil on success.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{Fields: []FieldError{{
			Field:   "unknown",
			Tag:     "unknown",
			Message: err.Error(),
		}}}
	}

	fields := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: translateError(fe),
		}
	}
	return &RequestValidationError{Fields: fields}
}

// errorMessageTemplates maps tags to messages taking the field name.
var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"userid":   "%s must be 1 to 64 visible ASCII characters",
	"numeric":  "%s must be numeric",
}

// errorMessageWithParam maps tags to messages taking the field name and the tag param.
var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"min":   "%s must be at least %s",
	"max":   "%s must be at most %s",
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError) string {
	if template, ok := errorMessageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(template, fe.Field())
	}
	if template, ok := errorMessageWithParam[fe.Tag()]; ok {
		msg := fmt.Sprintf(template, fe.Field(), fe.Param())
		if fe.Kind() == reflect.String && (fe.Tag() == "min" || fe.Tag() == "max") {
			msg += " characters"
		}
		return msg
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
