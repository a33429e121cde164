package domain

import (
	"errors"
	"fmt"
)

// DomainError represents errors in the domain layer
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// Is matches another DomainError by code so that errors.Is works against
// the sentinel values below.
func (e DomainError) Is(target error) bool {
	var t DomainError
	if errors.As(target, &t) {
		return t.Code == e.Code && t.Message == "" && t.Cause == nil
	}
	return false
}

// Domain error codes
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeFileNotFound      = "FILE_NOT_FOUND"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodeConfigMissing     = "CONFIG_MISSING"
	ErrCodeMultipleConfFiles = "MULTIPLE_CONF_FILES"
	ErrCodeTemplateNotFound  = "TEMPLATE_NOT_FOUND"
	ErrCodeEncodingError     = "ENCODING_ERROR"
	ErrCodeRenderError       = "RENDER_ERROR"
	ErrCodeProjectNotFound   = "PROJECT_NOT_FOUND"
)

// Sentinels for errors.Is checks. Only the code is compared.
var (
	ErrConfigurationMissing = DomainError{Code: ErrCodeConfigMissing}
	ErrMultipleConfFiles    = DomainError{Code: ErrCodeMultipleConfFiles}
	ErrTemplateNotFound     = DomainError{Code: ErrCodeTemplateNotFound}
	ErrProjectNotFound      = DomainError{Code: ErrCodeProjectNotFound}
)

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewConfigurationMissingError reports that the checkout has no conf.py.
// It is the one error the conf.py renderer recovers from.
func NewConfigurationMissingError(checkout string) error {
	return NewDomainError(ErrCodeConfigMissing, fmt.Sprintf("no conf.py found in %s", checkout), nil)
}

// NewMultipleConfFilesError reports an ambiguous conf.py lookup
func NewMultipleConfFilesError(files []string) error {
	return NewDomainError(ErrCodeMultipleConfFiles, fmt.Sprintf("found %d conf.py files: %v", len(files), files), nil)
}

// NewTemplateNotFoundError creates a template not found error
func NewTemplateNotFoundError(name string, cause error) error {
	return NewDomainError(ErrCodeTemplateNotFound, fmt.Sprintf("template not found: %s", name), cause)
}

// NewRenderError creates a render error
func NewRenderError(message string, cause error) error {
	return NewDomainError(ErrCodeRenderError, message, cause)
}

// NewProjectNotFoundError creates a project not found error
func NewProjectNotFoundError(slug string) error {
	return NewDomainError(ErrCodeProjectNotFound, fmt.Sprintf("project not found: %s", slug), nil)
}

// NewValidationError creates a validation error
func NewValidationError(message string) error {
	return NewDomainError(ErrCodeInvalidInput, message, nil)
}

// IsConfigurationMissing reports whether err signals a checkout without conf.py
func IsConfigurationMissing(err error) bool {
	return errors.Is(err, ErrConfigurationMissing)
}

// ErrorCode returns the code of the first DomainError in err's chain, or ""
func ErrorCode(err error) string {
	var de DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
