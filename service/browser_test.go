package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLaunchMissingBinary(t *testing.T) {
	err := launch("estudios-no-such-opener")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "estudios-no-such-opener")
}
