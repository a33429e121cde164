package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/rtdbuild/domain"
)

// ConfFileWriter writes files through a temporary file and rename so that a
// reader never sees a half-written conf.py.
type ConfFileWriter struct {
	status io.Writer // where to print status messages, nil for none
}

// NewConfFileWriter creates a silent writer
func NewConfFileWriter() *ConfFileWriter {
	return &ConfFileWriter{}
}

// NewConfFileWriterWithStatus creates a writer that reports each written path
func NewConfFileWriterWithStatus(status io.Writer) *ConfFileWriter {
	return &ConfFileWriter{status: status}
}

// WriteConf implements domain.ConfWriter.
func (w *ConfFileWriter) WriteConf(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to create temporary file in %s", dir), err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := io.WriteString(tmp, content); err != nil {
		tmp.Close()
		return domain.NewOutputError(fmt.Sprintf("failed to write %s", path), err)
	}
	if err := tmp.Close(); err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to write %s", path), err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to set permissions on %s", path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to replace %s", path), err)
	}

	if w.status != nil {
		absPath, err := filepath.Abs(path)
		if err != nil {
			absPath = path
		}
		fmt.Fprintf(w.status, "Written: %s\n", absPath)
	}
	return nil
}
