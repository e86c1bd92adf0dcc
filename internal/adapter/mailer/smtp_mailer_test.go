package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"aptilab/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/mail.v2"
)

type recordingSender struct {
	sent  []*mail.Message
	err   error
	delay time.Duration
}

func (s *recordingSender) DialAndSend(m ...*mail.Message) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.sent = append(s.sent, m...)
	return s.err
}

func TestSMTPMailer_Send(t *testing.T) {
	sender := &recordingSender{}
	m := NewSMTPMailerWithSender("reports@aptilab.dev", sender)

	err := m.Send(context.Background(), "ann@example.com", "AptiLab Test Report - Maths", "<p>hi</p>")
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, []string{"reports@aptilab.dev"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"ann@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"AptiLab Test Report - Maths"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/html")
}

func TestSMTPMailer_SendError(t *testing.T) {
	sendErr := errors.New("535 authentication failed")
	m := NewSMTPMailerWithSender("from@x", &recordingSender{err: sendErr})

	assert.ErrorIs(t, m.Send(context.Background(), "to@x", "s", "b"), sendErr)
}

func TestSMTPMailer_ContextDeadline(t *testing.T) {
	m := NewSMTPMailerWithSender("from@x", &recordingSender{delay: 200 * time.Millisecond})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, m.Send(ctx, "to@x", "s", "b"), context.DeadlineExceeded)
}

func TestNewSMTPMailer(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{Host: "smtp.example.com", Port: 465, User: "u", Password: "p", From: "f@x"})
	d, ok := m.sender.(*mail.Dialer)
	require.True(t, ok)
	assert.True(t, d.SSL)
	assert.Equal(t, 465, d.Port)

	m = NewSMTPMailer(config.SMTPConfig{Host: "smtp.example.com", User: "u", Password: "p", From: "f@x"})
	d = m.sender.(*mail.Dialer)
	assert.False(t, d.SSL)
	assert.Equal(t, 587, d.Port)
}
