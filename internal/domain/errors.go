package domain

import (
	"errors"
	"fmt"
)

type ErrCode string

const (
	CodeValidation   ErrCode = "validation_error"
	CodeNotFound     ErrCode = "not_found"
	CodeConflict     ErrCode = "conflict"
	CodeUnauthorized ErrCode = "unauthorized"
	CodeInternal     ErrCode = "internal_error"
)

type AppError struct {
	Code    ErrCode
	Message string
	Meta    map[string]string
	// Err is the underlying cause. It is logged, never rendered.
	Err error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	if e.Message == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func ErrValidation(msg string) error {
	return &AppError{Code: CodeValidation, Message: msg}
}

func ErrValidationMeta(msg string, meta map[string]string) error {
	return &AppError{Code: CodeValidation, Message: msg, Meta: meta}
}

func ErrNotFound(msg string) error {
	return &AppError{Code: CodeNotFound, Message: msg}
}

func ErrConflict(msg string) error {
	return &AppError{Code: CodeConflict, Message: msg}
}

// ErrUnauthorized is returned when the actor may not touch an entity it does not own.
func ErrUnauthorized(msg string) error {
	return &AppError{Code: CodeUnauthorized, Message: msg}
}

func ErrInternal(msg string, cause error) error {
	return &AppError{Code: CodeInternal, Message: msg, Err: cause}
}

// CodeOf returns the code of the first AppError in the chain, or CodeInternal.
func CodeOf(err error) ErrCode {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

func IsCode(err error, code ErrCode) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Code == code
}
