package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorFormatting(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := NewFileNotFoundError("catalog.csv", cause)

	assert.Contains(t, err.Error(), "FILE_NOT_FOUND")
	assert.Contains(t, err.Error(), "catalog.csv")
	assert.Contains(t, err.Error(), "permission denied")
}

func TestDomainErrorWithoutCause(t *testing.T) {
	err := NewUnsupportedFormatError("xml")

	assert.Equal(t, "[UNSUPPORTED_FORMAT] unsupported format: xml", err.Error())
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := NewOutputError("failed to write output", cause)

	assert.True(t, errors.Is(err, cause))

	var domainErr DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, ErrCodeOutputError, domainErr.Code)
}
