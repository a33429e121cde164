package service

import (
	"errors"
	"io/fs"
	"os"

	"github.com/ludo-technologies/rtdbuild/domain"
	"github.com/pmezard/go-difflib/difflib"
)

// ConfDiff compares rendered content with the file at path. A missing file
// counts as empty. The returned diff is empty when nothing changed.
func ConfDiff(path, rendered string) (bool, string, error) {
	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, "", domain.NewFileNotFoundError(path, err)
	}
	if string(current) == rendered {
		return false, "", nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(rendered),
		FromFile: path,
		ToFile:   path + " (rendered)",
		Context:  3,
	})
	if err != nil {
		return true, "", domain.NewRenderError("failed to diff "+path, err)
	}
	return true, diff, nil
}
