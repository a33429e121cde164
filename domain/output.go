package domain

import (
	"io"
)

// OutputFormat selects how a conf.py report is printed
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ReportFormatter prints the outcome of a conf.py request
type ReportFormatter interface {
	Write(response *ConfPyResponse, format OutputFormat, writer io.Writer) error
}

// ConfWriter persists rendered conf.py content.
//
// Implementations live in the service layer.
type ConfWriter interface {
	// WriteConf replaces the file at path with content.
	// Implementations must not leave a partially written file behind.
	WriteConf(path, content string) error
}

// ProgressManager manages progress tracking across versions
type ProgressManager interface {
	// Initialize sets up progress tracking with the maximum value
	Initialize(maxValue int)

	// Start starts the progress bar
	Start()

	// Complete marks the progress as completed
	Complete(success bool)

	// Update updates the progress
	Update(processed, total int)

	// SetWriter sets the output writer for progress bars
	SetWriter(writer io.Writer)

	// IsInteractive returns true if progress bars should be shown
	IsInteractive() bool

	// Close cleans up any resources
	Close()
}

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	ErrorCategoryInput    ErrorCategory = "Input Error"
	ErrorCategoryConfig   ErrorCategory = "Configuration Error"
	ErrorCategoryTemplate ErrorCategory = "Template Error"
	ErrorCategoryRender   ErrorCategory = "Render Error"
	ErrorCategoryOutput   ErrorCategory = "Output Error"
	ErrorCategoryUnknown  ErrorCategory = "Unknown Error"
)

// CategorizedError represents an error with category information
type CategorizedError struct {
	Category ErrorCategory
	Message  string
	Original error
}

// Error implements the error interface
func (e *CategorizedError) Error() string {
	if e.Original != nil {
		return e.Original.Error()
	}
	return e.Message
}

// ErrorCategorizer categorizes errors for better reporting
type ErrorCategorizer interface {
	// Categorize determines the category of an error
	Categorize(err error) *CategorizedError

	// GetRecoverySuggestions returns recovery suggestions for an error category
	GetRecoverySuggestions(category ErrorCategory) []string
}
