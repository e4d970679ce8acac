package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("noreply@x.com", "a@x.com", "Hi", "<p>body</p>"))

	assert.Contains(t, msg, "From: noreply@x.com\r\n")
	assert.Contains(t, msg, "To: a@x.com\r\n")
	assert.Contains(t, msg, "Subject: Hi\r\n")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.True(t, strings.HasSuffix(msg, "<p>body</p>\r\n"))
}

func TestSMTPNotifier_Send(t *testing.T) {
	orig := sendMail
	defer func() { sendMail = orig }()

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	var gotAuth smtp.Auth

	sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, msg
		return nil
	}

	n := NewSMTPNotifier("mail.example.org:587", "mailer", "pw", "noreply@example.org")
	err := n.Send(context.Background(), "a@x.com", "Hello", "<p>hi</p>")
	require.NoError(t, err)

	assert.Equal(t, "mail.example.org:587", gotAddr)
	assert.NotNil(t, gotAuth, "PLAIN auth expected when user is set")
	assert.Equal(t, "noreply@example.org", gotFrom)
	assert.Equal(t, []string{"a@x.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Hello")
}

func TestSMTPNotifier_Send_NoAuthWithoutUser(t *testing.T) {
	orig := sendMail
	defer func() { sendMail = orig }()

	var gotAuth smtp.Auth
	sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAuth = a
		return nil
	}

	n := NewSMTPNotifier("localhost:1025", "", "", "noreply@skycast.local")
	require.NoError(t, n.Send(context.Background(), "a@x.com", "s", "b"))
	assert.Nil(t, gotAuth)
}

func TestSMTPNotifier_Send_WrapsTransportError(t *testing.T) {
	orig := sendMail
	defer func() { sendMail = orig }()

	sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		return errors.New("connection refused")
	}

	n := NewSMTPNotifier("localhost:1025", "", "", "noreply@skycast.local")
	err := n.Send(context.Background(), "a@x.com", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail send error")
}

func TestSMTPNotifier_Send_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := NewSMTPNotifier("localhost:1025", "", "", "noreply@skycast.local")
	err := n.Send(ctx, "a@x.com", "s", "b")
	require.ErrorIs(t, err, context.Canceled)
}

func TestTemplates_Render(t *testing.T) {
	base := "https://accounts.skycast.app"

	welcome, err := WelcomeBody("alice", base)
	require.NoError(t, err)
	assert.Contains(t, welcome, "Dear alice")
	assert.Contains(t, welcome, "Thank you for registering")

	reset, err := ResetOTPBody("alice", "123456", base)
	require.NoError(t, err)
	assert.Contains(t, reset, "123456")
	assert.Contains(t, reset, base+"/update/password")

	confirmed, err := ResetConfirmedBody("alice", base)
	require.NoError(t, err)
	assert.Contains(t, confirmed, "successfully reset")

	updated, err := ProfileUpdatedBody("alice", base)
	require.NoError(t, err)
	assert.Contains(t, updated, "successfully updated")
}

func TestTemplates_EscapeUserContent(t *testing.T) {
	body, err := WelcomeBody(`<script>alert(1)</script>`, "b")
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}
