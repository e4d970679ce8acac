package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.json")

	body := `{
		"address": ":9999",
		"database_dsn": "postgres://u:p@h:5432/db",
		"secret_key": "json-secret",
		"access_token_validity": "45m",
		"otp_length": 4,
		"otp_validity": "5m",
		"base_url": "https://example.org",
		"smtp_addr": "mail:587",
		"smtp_user": "mailer",
		"smtp_password": "pw",
		"mail_from": "noreply@example.org"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd", "-c", path}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, ":9999", c.Addr)
	assert.Equal(t, "postgres://u:p@h:5432/db", c.DatabaseDSN)
	assert.Equal(t, "json-secret", c.SecretKey)
	assert.Equal(t, 45*time.Minute, c.AccessTokenValidity)
	assert.Equal(t, 4, c.OTPLength)
	assert.Equal(t, 5*time.Minute, c.OTPValidity)
	assert.Equal(t, "https://example.org", c.BaseURL)
	assert.Equal(t, "mail:587", c.SMTPAddr)
	assert.Equal(t, "mailer", c.SMTPUser)
	assert.Equal(t, "pw", c.SMTPPassword)
	assert.Equal(t, "noreply@example.org", c.MailFrom)
}

func TestParseJson_NoFlagIsNoop(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd"}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, ":5000", c.Addr)
}

func TestParseEnv_OverlaysValues(t *testing.T) {
	t.Setenv("ADDRESS", ":7777")
	t.Setenv("OTP_VALIDITY", "20m")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, ":7777", c.Addr)
	assert.Equal(t, 20*time.Minute, c.OTPValidity)
	// untouched by env
	assert.Equal(t, "secretKey", c.SecretKey)
}
