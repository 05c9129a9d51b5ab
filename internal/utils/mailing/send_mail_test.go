package mailing

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	cfg := MailConfig{SMTPEmail: "deploy@backstube.test", SMTPSender: "Backstube"}

	msg := NewMessage(cfg, "ops@backstube.test", "Deployment", "pulled main")

	assert.Equal(t, []string{"ops@backstube.test"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Deployment"}, msg.GetHeader("Subject"))
	assert.Contains(t, msg.GetHeader("From")[0], "deploy@backstube.test")

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "pulled main")
}

func TestSendMail_NotConfigured(t *testing.T) {
	t.Setenv("SMTP_HOST", "")

	err := SendMail("ops@backstube.test", "Deployment", "body")

	assert.ErrorIs(t, err, ErrMailNotConfigured)
}
