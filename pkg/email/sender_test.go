package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartassist/pkg/config"
)

func TestSanitizeHeader(t *testing.T) {
	assert.Equal(t, "a subject", sanitizeHeader("a subject"))
	assert.Equal(t, "Bcc: evil@example.com", sanitizeHeader("Bcc:\r\n evil@example.com"))
	assert.Equal(t, "no newlines", sanitizeHeader("no\nnew\rlines"))
}

func TestSendRequiresFromAddress(t *testing.T) {
	sender := NewSender(&config.SMTPConfig{Host: "localhost", Port: "2525"}, zap.NewNop())

	err := sender.Send("someone@example.com", "subject", "<p>body</p>")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
