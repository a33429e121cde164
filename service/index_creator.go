package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/rtdbuild/domain"
	"github.com/ludo-technologies/rtdbuild/internal/templates"
)

// IndexCreatorImpl makes sure a docs directory has a root document
type IndexCreatorImpl struct {
	templates *templates.Set
	title     string
	writer    domain.ConfWriter
}

// NewIndexCreator creates an index creator. title heads a generated page.
func NewIndexCreator(set *templates.Set, title string, writer domain.ConfWriter) *IndexCreatorImpl {
	if writer == nil {
		writer = NewConfFileWriter()
	}
	return &IndexCreatorImpl{templates: set, title: title, writer: writer}
}

// CreateIndex implements domain.IndexCreator. It returns the document name
// without extension: index when index.<ext> exists or was generated, README
// when only README.<ext> exists.
func (c *IndexCreatorImpl) CreateIndex(docsDir, extension string) (string, error) {
	extension = strings.TrimPrefix(extension, ".")
	if extension == "" {
		extension = domain.DefaultSourceExtension
	}

	if fileExists(filepath.Join(docsDir, "index."+extension)) {
		return "index", nil
	}
	if fileExists(filepath.Join(docsDir, "README."+extension)) {
		return "README", nil
	}

	content, err := c.templates.Render(templates.IndexRST, map[string]any{
		"Title":     c.title,
		"Extension": extension,
	})
	if err != nil {
		return "", err
	}

	target := filepath.Join(docsDir, "index."+extension)
	if err := c.writer.WriteConf(target, content); err != nil {
		return "", fmt.Errorf("failed to create index: %w", err)
	}
	return "index", nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
