package errors

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Messages for the constraints a form can declare in markup use the wording
// browsers show for their native validation bubbles.
func msgForTag(tag string) string {
	switch tag {
	case "required":
		return "Please fill out this field."
	case "email", "html_email":
		return "Please include a valid email address."
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "url", "uri":
		return "Please enter a URL."
	case "numeric":
		return "Please enter a number."
	default:
		return "Please match the requested format."
	}
}

// fieldName resolves the wire name of a struct field: the form tag first,
// then the json tag, then the Go name.
func fieldName(structType reflect.Type, goName string) string {
	if structType == nil {
		return goName
	}

	field, found := structType.FieldByName(goName)
	if !found {
		return goName
	}

	for _, key := range []string{"form", "json"} {
		tag := field.Tag.Get(key)
		if tag == "" || tag == "-" {
			continue
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			return name
		}
	}

	return goName
}

func FormatValidationErrors(err error, model interface{}) []ValidationErrorResponse {
	var errorsList []ValidationErrorResponse

	if err == nil {
		return errorsList
	}

	if jsonErr, ok := err.(*json.UnmarshalTypeError); ok {
		return []ValidationErrorResponse{
			{
				Field:   jsonErr.Field,
				Message: fmt.Sprintf("Invalid type for field %s. Expected %s, got %s", jsonErr.Field, jsonErr.Type, jsonErr.Value),
			},
		}
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errorsList
	}

	var structType reflect.Type
	if model != nil {
		structType = reflect.TypeOf(model)
		if structType.Kind() == reflect.Ptr {
			structType = structType.Elem()
		}
	}

	errorsList = make([]ValidationErrorResponse, len(validationErrors))
	for i, fieldError := range validationErrors {
		message := msgForTag(fieldError.Tag())

		if fieldError.Param() != "" {
			switch fieldError.Tag() {
			case "min":
				message = fmt.Sprintf("Please use at least %s characters.", fieldError.Param())
			case "max":
				message = fmt.Sprintf("Please use no more than %s characters.", fieldError.Param())
			}
		}

		errorsList[i] = ValidationErrorResponse{
			Field:   fieldName(structType, fieldError.Field()),
			Message: message,
		}
	}

	return errorsList
}

// FieldMessages indexes validation errors by field, keeping the first
// message reported for each field.
func FieldMessages(list []ValidationErrorResponse) map[string]string {
	messages := make(map[string]string, len(list))
	for _, item := range list {
		if _, seen := messages[item.Field]; seen {
			continue
		}
		messages[item.Field] = item.Message
	}
	return messages
}
