// Package web enables consistent responses across all handlers.
package web

import (
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Response is the envelope of every response body.
//
// Status mirrors the HTTP status code of the response.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Success wraps data into an OK response.
func Success(message string, data any) Response {
	return Response{
		Status:  http.StatusOK,
		Message: message,
		Data:    data,
	}
}

// Error wraps err into a response with the given status and no data.
func Error(status int, err error) Response {
	return Response{
		Status:  status,
		Message: err.Error(),
	}
}

// Message wraps a plain message into a response with the given status and no data.
func Message(status int, message string) Response {
	return Response{
		Status:  status,
		Message: message,
	}
}

// GetErrorMsg renders the failed validation rule of a field.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " field is required"
	case "email":
		return " must be a valid email"
	case "min":
		return " must be at least " + fe.Param() + " characters long"
	case "max":
		return " must be at most " + fe.Param() + " characters long"
	case "gte":
		return " must be greater than or equal to " + fe.Param()
	case "servicecode":
		return " must consist of upper case letters, digits and underscores"
	}

	return " is invalid"
}

// ValidationMessage renders the first validation error of err, or fallback.
func ValidationMessage(err error, fallback string) string {
	ve, ok := err.(validator.ValidationErrors)
	if !ok || len(ve) == 0 {
		return fallback
	}

	field := ve[0]

	return field.Field() + GetErrorMsg(field)
}
