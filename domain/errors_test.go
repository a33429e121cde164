package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsConfigurationMissing(t *testing.T) {
	err := NewConfigurationMissingError("/checkouts/latest")
	assert.True(t, IsConfigurationMissing(err))
	assert.True(t, IsConfigurationMissing(fmt.Errorf("locate: %w", err)))
	assert.False(t, IsConfigurationMissing(NewTemplateNotFoundError("sphinx/conf.py.tmpl", nil)))
	assert.False(t, IsConfigurationMissing(errors.New("no conf.py")))
	assert.False(t, IsConfigurationMissing(nil))
}

func TestSentinelsMatchByCode(t *testing.T) {
	err := NewTemplateNotFoundError("doc_builder/conf.py.tmpl", errors.New("missing"))
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.NotErrorIs(t, err, ErrConfigurationMissing)

	err = NewMultipleConfFilesError([]string{"a/conf.py", "b/conf.py"})
	assert.ErrorIs(t, err, ErrMultipleConfFiles)
	assert.Contains(t, err.Error(), "found 2 conf.py files")
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeRenderError, ErrorCode(fmt.Errorf("wrap: %w", NewRenderError("bad", nil))))
	assert.Equal(t, "", ErrorCode(errors.New("plain")))
}

func TestDomainErrorFormatting(t *testing.T) {
	err := NewConfigError("failed to load", errors.New("boom"))
	assert.Equal(t, "[CONFIG_ERROR] failed to load: boom", err.Error())
	assert.Equal(t, "[INVALID_INPUT] bad input", NewValidationError("bad input").Error())
}
