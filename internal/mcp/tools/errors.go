package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/schemainfer/internal/samples"
	"github.com/usestring/schemainfer/pkg/jsonschema"
	"github.com/usestring/schemainfer/pkg/jsonvalue"
	"github.com/usestring/schemainfer/pkg/shape"
)

// Error codes for MCP tool responses.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeEmptyInput   = "EMPTY_INPUT"
	ErrCodeParseError   = "PARSE_ERROR"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapAnalysisError converts an error from loading or inferring samples to a
// coded error.
func WrapAnalysisError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return err
	}

	var unsupported *jsonschema.UnsupportedSchemaError
	switch {
	case errors.Is(err, jsonschema.ErrEmptyInput), errors.Is(err, shape.ErrNoValues):
		coded = &CodedError{Code: ErrCodeEmptyInput, Message: "no values to infer a schema from", Cause: err}
	case errors.Is(err, samples.ErrTooManySamples), errors.Is(err, samples.ErrTooLarge):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: "input exceeds configured limits", Cause: err}
	case errors.As(err, &unsupported):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: "schema cannot be merged", Cause: err}
	case errors.Is(err, jsonvalue.ErrNonFinite):
		coded = &CodedError{Code: ErrCodeParseError, Message: "sample contains a non-finite number", Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeParseError, Message: "failed to process input", Cause: err}
	}

	slog.WarnContext(ctx, "tool input rejected",
		slog.String("code", coded.Code),
		slog.String("error", err.Error()),
	)

	return coded
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

// ErrParse creates a parse error for the given input.
func ErrParse(what string, cause error) error {
	return &CodedError{
		Code:    ErrCodeParseError,
		Message: fmt.Sprintf("failed to parse %s", what),
		Cause:   cause,
	}
}
