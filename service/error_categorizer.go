package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ludo-technologies/rtdbuild/domain"
	"github.com/ludo-technologies/rtdbuild/internal/parser"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	patterns []categoryPatterns
}

type categoryPatterns struct {
	category domain.ErrorCategory
	patterns []string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		patterns: initializeErrorPatterns(),
	}
}

// initializeErrorPatterns returns message patterns in matching order
func initializeErrorPatterns() []categoryPatterns {
	return []categoryPatterns{
		{domain.ErrorCategoryTemplate, []string{
			"template not found",
			"failed to parse template",
		}},
		{domain.ErrorCategoryConfig, []string{
			"config",
			"configuration",
			"registry",
			"toml",
			"yaml",
		}},
		{domain.ErrorCategoryRender, []string{
			"render",
			"syntax error",
			"not valid python",
		}},
		{domain.ErrorCategoryOutput, []string{
			"write",
			"output",
			"temporary file",
			"permission denied",
		}},
		{domain.ErrorCategoryInput, []string{
			"invalid input",
			"not found",
			"no such file",
			"directory",
			"conf.py files",
		}},
	}
}

// codeCategories maps domain error codes to categories
var codeCategories = map[string]domain.ErrorCategory{
	domain.ErrCodeInvalidInput:      domain.ErrorCategoryInput,
	domain.ErrCodeFileNotFound:      domain.ErrorCategoryInput,
	domain.ErrCodeProjectNotFound:   domain.ErrorCategoryInput,
	domain.ErrCodeMultipleConfFiles: domain.ErrorCategoryInput,
	domain.ErrCodeConfigMissing:     domain.ErrorCategoryInput,
	domain.ErrCodeConfigError:       domain.ErrorCategoryConfig,
	domain.ErrCodeTemplateNotFound:  domain.ErrorCategoryTemplate,
	domain.ErrCodeRenderError:       domain.ErrorCategoryRender,
	domain.ErrCodeEncodingError:     domain.ErrorCategoryRender,
	domain.ErrCodeOutputError:       domain.ErrorCategoryOutput,
}

// Categorize determines the category of an error. Domain error codes win
// over message patterns.
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	if category, ok := codeCategories[domain.ErrorCode(err)]; ok {
		return ec.categorized(category, err)
	}

	var syntaxErr *parser.SyntaxError
	if errors.As(err, &syntaxErr) {
		return ec.categorized(domain.ErrorCategoryRender, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &domain.CategorizedError{
			Category: domain.ErrorCategoryUnknown,
			Message:  "Operation was cancelled",
			Original: err,
		}
	}

	errMsg := strings.ToLower(err.Error())
	for _, cp := range ec.patterns {
		if containsAnyPattern(errMsg, cp.patterns) {
			return ec.categorized(cp.category, err)
		}
	}

	return &domain.CategorizedError{
		Category: domain.ErrorCategoryUnknown,
		Message:  err.Error(),
		Original: err,
	}
}

func (ec *ErrorCategorizerImpl) categorized(category domain.ErrorCategory, err error) *domain.CategorizedError {
	return &domain.CategorizedError{
		Category: category,
		Message:  ec.getCategoryMessage(category),
		Original: err,
	}
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that the checkout path exists and holds the documentation sources",
			"Use --project with a slug listed in the project registry, or --name for an ad-hoc project",
			"Set conf_py_file on the project when the checkout has several conf.py files",
		},
		domain.ErrorCategoryConfig: {
			"Verify configuration file format and values",
			"Try: rtdbuild init to generate a valid config file",
			"Check for syntax errors in .rtdbuild.toml, pyproject.toml or the project registry",
		},
		domain.ErrorCategoryTemplate: {
			"Check build.template_override_dir; it must contain every conf.py template",
			"Unset build.template_override_dir to use the built-in templates",
		},
		domain.ErrorCategoryRender: {
			"Check the project's own conf.py for syntax errors",
			"Run with --dry-run to inspect the rendered conf.py",
			"Set validate_syntax = false to write the file anyway",
		},
		domain.ErrorCategoryOutput: {
			"Check write permissions on the documentation directory",
			"Try: rtdbuild conf --dry-run to print instead of writing",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
			"Report the issue if it persists",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

// getCategoryMessage returns a user-friendly message for an error category
func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:    "Failed to resolve the project checkout",
		domain.ErrorCategoryConfig:   "Configuration file or settings error",
		domain.ErrorCategoryTemplate: "conf.py template is missing or invalid",
		domain.ErrorCategoryRender:   "Failed to render conf.py",
		domain.ErrorCategoryOutput:   "Failed to write conf.py",
		domain.ErrorCategoryUnknown:  "An unexpected error occurred",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

// containsAnyPattern checks if a string contains any of the given patterns
func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}
