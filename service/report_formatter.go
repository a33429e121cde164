package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/rtdbuild/domain"
)

// ReportFormatterImpl implements the ReportFormatter interface
type ReportFormatterImpl struct {
	utils *FormatUtils
}

// NewReportFormatter creates a report formatter; color only affects text output
func NewReportFormatter(color bool) *ReportFormatterImpl {
	return &ReportFormatterImpl{utils: NewFormatUtils(color)}
}

// ParseOutputFormat validates a format name, defaulting to text
func ParseOutputFormat(name string) (domain.OutputFormat, error) {
	switch domain.OutputFormat(strings.ToLower(name)) {
	case "", domain.OutputFormatText:
		return domain.OutputFormatText, nil
	case domain.OutputFormatJSON:
		return domain.OutputFormatJSON, nil
	case domain.OutputFormatYAML:
		return domain.OutputFormatYAML, nil
	default:
		return "", domain.NewInvalidInputError(fmt.Sprintf("unsupported output format: %s", name), nil)
	}
}

// Write writes the formatted report to the writer
func (f *ReportFormatterImpl) Write(response *domain.ConfPyResponse, format domain.OutputFormat, writer io.Writer) error {
	if response == nil {
		return domain.NewInvalidInputError("no report to format", nil)
	}

	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatText, "":
		if _, err := io.WriteString(writer, f.formatText(response)); err != nil {
			return domain.NewOutputError("failed to write output", err)
		}
		return nil
	default:
		return domain.NewInvalidInputError(fmt.Sprintf("unsupported output format: %s", format), nil)
	}
}

func (f *ReportFormatterImpl) formatText(response *domain.ConfPyResponse) string {
	var builder strings.Builder
	builder.WriteString(f.utils.FormatMainHeader(fmt.Sprintf("conf.py report for %s", response.ProjectSlug)))

	for _, r := range response.Results {
		builder.WriteString(f.utils.FormatLabel("Version", r.VersionSlug))
		builder.WriteString(f.utils.FormatLabel("Path", r.Path))
		source := "project"
		if r.Generated {
			source = "generated"
		}
		builder.WriteString(f.utils.FormatLabel("Source", source))
		builder.WriteString(f.utils.FormatLabel("Status", f.status(response.Mode, r.Changed)))
		builder.WriteString("\n")
	}
	return builder.String()
}

func (f *ReportFormatterImpl) status(mode domain.ConfPyMode, changed bool) string {
	if !changed {
		return f.utils.Colorize("up to date", ColorGreen)
	}
	switch mode {
	case domain.ConfPyModeWrite:
		return f.utils.Colorize("written", ColorYellow)
	case domain.ConfPyModeCheck:
		return f.utils.Colorize("out of date", ColorYellow)
	default:
		return f.utils.Colorize("would change", ColorYellow)
	}
}
