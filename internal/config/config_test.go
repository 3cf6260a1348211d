package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "host=localhost")
	t.Setenv("SESSION_SECRET", "s")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "/media/", cfg.MediaURL)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.True(t, cfg.Mail.TLS)
	assert.False(t, cfg.Mail.SendCredentials)
}

func TestParseMail(t *testing.T) {
	t.Setenv("MAIL_HOST", "smtp.example.com")
	t.Setenv("MAIL_PORT", "465")
	t.Setenv("MAIL_FROM", "noreply@example.com")
	t.Setenv("MAIL_SEND_CREDENTIALS", "true")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com", cfg.Mail.Host)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.True(t, cfg.Mail.SendCredentials)
	assert.Equal(t, "noreply@example.com", cfg.Mail.InquiryRecipient())

	t.Setenv("MAIL_NOTIFY_TO", "office@example.com")
	cfg, err = Parse()
	require.NoError(t, err)
	assert.Equal(t, "office@example.com", cfg.Mail.InquiryRecipient())
}

func TestParseRejectsBadPort(t *testing.T) {
	t.Setenv("MAIL_PORT", "smtp")
	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}
