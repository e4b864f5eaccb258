package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/saludplus/backend/internal/config"
	emailProvider "github.com/saludplus/backend/pkg/email"
	mock_email "github.com/saludplus/backend/pkg/email/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func writeVerificationTemplate(t *testing.T) config.EmailConfig {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.MkdirAll("templates", 0o755))
	tpl := "<p>Su código de verificación es {{.VerificationCode}}</p>"
	require.NoError(t, os.WriteFile(filepath.Join("templates", "verification.html"), []byte(tpl), 0o644))

	return config.EmailConfig{
		Templates: config.EmailTemplates{Verification: "verification.html"},
	}
}

func TestSendUserVerificationEmail(t *testing.T) {
	cfg := writeVerificationTemplate(t)

	sender := new(mock_email.EmailSender)
	sender.On("Send", mock.MatchedBy(func(inp emailProvider.SendEmailInput) bool {
		return inp.To == "jperez@clinica.com" &&
			inp.Subject == "Código de verificación" &&
			inp.Body == "<p>Su código de verificación es 483920</p>"
	})).Return(nil)

	s := newEmailSender(sender, cfg)
	err := s.SendUserVerificationEmail(context.Background(), "jperez@clinica.com", "483920")

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestSendUserVerificationEmailMissingTemplate(t *testing.T) {
	t.Chdir(t.TempDir())

	sender := new(mock_email.EmailSender)
	s := newEmailSender(sender, config.EmailConfig{
		Templates: config.EmailTemplates{Verification: "missing.html"},
	})

	err := s.SendUserVerificationEmail(context.Background(), "jperez@clinica.com", "483920")

	assert.Error(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything)
}
