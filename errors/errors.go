package errors

import (
	"fmt"
	"time"
)

// Stage identifies which part of the pipeline an error came from, so the CLI
// can report the failing stage without a stack trace.
type Stage string

const (
	StageInput      Stage = "input"
	StageConfig     Stage = "config"
	StageExtraction Stage = "extraction"
	StageRender     Stage = "render"
	StagePublish    Stage = "publish"
	StageOutput     Stage = "output"
)

// AppError is the application error type carried across the pipeline.
type AppError struct {
	Raw       error
	Stage     Stage
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements the error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Stage, e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Stage, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e AppError) Unwrap() error { return e.Raw }

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// Input errors

func ErrInputNotFound(path string) AppError {
	return AppError{
		Stage:   StageInput,
		Message: "Input transcript not found",
	}.WithDetail("path", path)
}

func ErrInputUnreadable(path string, err error) AppError {
	return AppError{
		Raw:     err,
		Stage:   StageInput,
		Message: "Failed to read input transcript",
	}.WithDetail("path", path)
}

// Config errors

func ErrMissingCredential(name string) AppError {
	return AppError{
		Stage:   StageConfig,
		Message: fmt.Sprintf("%s is required", name),
	}
}

func ErrInvalidConfig(err error) AppError {
	return AppError{
		Raw:     err,
		Stage:   StageConfig,
		Message: "Invalid configuration",
	}
}

// Extraction errors

func ErrExtractionFailed(err error) AppError {
	return AppError{
		Raw:     err,
		Stage:   StageExtraction,
		Message: "Completion service call failed",
	}
}

// Render errors

func ErrRenderFailed(err error) AppError {
	return AppError{
		Raw:     err,
		Stage:   StageRender,
		Message: "Failed to render minutes document",
	}
}

// Publish errors

func ErrPublishFailed(status int, body string) AppError {
	return AppError{
		Stage:   StagePublish,
		Message: fmt.Sprintf("Confluence API error: %d", status),
	}.WithDetail("status", fmt.Sprintf("%d", status)).
		WithDetail("response", body)
}

func ErrPublishTransport(err error) AppError {
	return AppError{
		Raw:     err,
		Stage:   StagePublish,
		Message: "Confluence request failed",
	}
}

// Local output errors

func ErrLocalSaveFailed(path string, err error) AppError {
	return AppError{
		Raw:     err,
		Stage:   StageOutput,
		Message: "Failed to save local copy",
	}.WithDetail("path", path)
}
