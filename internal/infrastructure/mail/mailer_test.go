package mail_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mrp-api/internal/infrastructure/mail"
	"github.com/jhoicas/mrp-api/pkg/config"
)

func TestResetMessage_IncluyeEnlace(t *testing.T) {
	msg := mail.ResetMessage("no-reply@mrp.local", "ana@mrp.local", "<ana>", "http://front/reset?token=abc")

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, []string{"ana@mrp.local"}, msg.GetHeader("To"))
	assert.Contains(t, out, "http://front/reset?token=3Dabc", "el cuerpo va en quoted-printable")
	assert.Contains(t, out, "&lt;ana&gt;")
}

func TestNew_SinHostRegistraEnLog(t *testing.T) {
	var buf bytes.Buffer
	m := mail.New(config.MailConfig{}, zerolog.New(&buf))

	_, ok := m.(*mail.LogMailer)
	require.True(t, ok)

	require.NoError(t, m.SendPasswordReset(context.Background(), "ana@mrp.local", "ana", "http://front/reset?token=abc"))
	assert.Contains(t, buf.String(), "token=abc")
}

func TestNew_ConHostUsaSMTP(t *testing.T) {
	m := mail.New(config.MailConfig{Host: "smtp.mrp.local", Port: 587}, zerolog.Nop())
	_, ok := m.(*mail.SMTPMailer)
	assert.True(t, ok)
}
