package templates

import (
	"bytes"
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"sync"
	"text/template"

	"github.com/ludo-technologies/rtdbuild/domain"
)

// Template names, relative to the template root
const (
	ConfPyBase    = "sphinx/conf.py.tmpl"
	ConfPyOverlay = "doc_builder/conf.py.tmpl"
	IndexRST      = "sphinx/index.rst.tmpl"
)

// OverlayMarker is the first line of the rendered overlay. It lets a later
// build find and replace a previously appended overlay.
const OverlayMarker = "# -- Read the Docs build settings ---------------------------------------------"

//go:embed files
var embedded embed.FS

// Set loads and caches the conf.py templates
type Set struct {
	mu     sync.Mutex
	fsys   fs.FS
	source string
	parsed map[string]*template.Template
}

// NewEmbedded returns the template set compiled into the binary
func NewEmbedded() *Set {
	sub, err := fs.Sub(embedded, "files")
	if err != nil {
		// the embed directive guarantees the directory exists
		panic(err)
	}
	return &Set{fsys: sub, source: "embedded", parsed: make(map[string]*template.Template)}
}

// NewFromDir returns a template set read from dir. The directory must hold
// every template the renderer uses; there is no fallback to the embedded set.
func NewFromDir(dir string) *Set {
	return &Set{fsys: os.DirFS(dir), source: dir, parsed: make(map[string]*template.Template)}
}

// Source describes where templates are loaded from
func (s *Set) Source() string {
	return s.source
}

// Render executes the named template with data
func (s *Set) Render(name string, data any) (string, error) {
	tmpl, err := s.lookup(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", domain.NewRenderError("failed to render "+name, err)
	}
	return buf.String(), nil
}

// Check verifies that every template exists and parses
func (s *Set) Check() error {
	for _, name := range []string{ConfPyBase, ConfPyOverlay, IndexRST} {
		if _, err := s.lookup(name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Set) lookup(name string) (*template.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tmpl, ok := s.parsed[name]; ok {
		return tmpl, nil
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewTemplateNotFoundError(path.Join(s.source, name), err)
		}
		return nil, domain.NewConfigError("failed to read template "+name, err)
	}

	tmpl, err := template.New(path.Base(name)).
		Option("missingkey=error").
		Funcs(FuncMap()).
		Parse(string(data))
	if err != nil {
		return nil, domain.NewRenderError("failed to parse template "+name, err)
	}

	s.parsed[name] = tmpl
	return tmpl, nil
}
