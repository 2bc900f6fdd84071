package common

import (
	"errors"
	"fmt"

	"github.com/joseph-ayodele/invoice-ocr/constants"
)

// AppError represents application-level errors outside the pipeline stages
// (startup, configuration).
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// StageError is the tagged failure returned by a pipeline stage.
type StageError struct {
	Stage   constants.Stage
	Kind    constants.FailureKind
	Message string
	Cause   error
}

func (e *StageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Stage, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Stage, e.Kind, e.Message)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for this error's kind, so callers
// can write errors.Is(err, common.ErrFieldNotFound).
func (e *StageError) Is(target error) bool {
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// Common application errors
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrResourceUnavailable = errors.New("resource unavailable")
	ErrRecognitionFailure  = errors.New("recognition failure")
	ErrFieldNotFound       = errors.New("field not found")
	ErrWriteFailure        = errors.New("write failure")
)

var kindSentinels = map[constants.FailureKind]error{
	constants.KindResourceUnavailable: ErrResourceUnavailable,
	constants.KindRecognitionFailure:  ErrRecognitionFailure,
	constants.KindFieldNotFound:       ErrFieldNotFound,
	constants.KindWriteFailure:        ErrWriteFailure,
	constants.KindConfig:              ErrInvalidInput,
}

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewStageError(stage constants.Stage, kind constants.FailureKind, message string, cause error) *StageError {
	return &StageError{
		Stage:   stage,
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// KindOf returns the failure kind carried by err, or "" if err holds no StageError.
func KindOf(err error) constants.FailureKind {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// StageOf returns the stage that produced err, or "" if err holds no StageError.
func StageOf(err error) constants.Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
