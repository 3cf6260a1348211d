package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "an***@example.com", maskEmail("anna@example.com"))
	assert.Equal(t, "a***@example.com", maskEmail("a@example.com"))
	assert.Equal(t, "***", maskEmail("broken"))
	assert.Equal(t, "***", maskEmail("@example.com"))
}
