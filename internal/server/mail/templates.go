package mail

import (
	"fmt"
	"html/template"
	"strings"
)

// Mail subjects, matching what users of the mobile app already receive.
const (
	SubjectWelcome        = "Welcome"
	SubjectResetOTP       = "OTP for Password Reset"
	SubjectResetConfirmed = "Password Reset Successful"
	SubjectProfileUpdated = "Profile Updated"
)

var (
	welcomeTmpl = template.Must(template.New("welcome").Parse(
		`<p>Dear {{.Username}},</p>
<p>Thank you for registering with us. We're excited to have you on board.</p>
<p>Best regards,<br>{{.BaseURL}}</p>`))

	resetOTPTmpl = template.Must(template.New("reset_otp").Parse(
		`<p>Dear {{.Username}},</p>
<p>Your OTP for password reset is: {{.OTP}}</p>
<p>If you did not request this, please ignore this message.</p>
<p>Use this link to update, or your mobile app: {{.BaseURL}}/update/password</p>
<p>Best regards,<br>{{.BaseURL}} Team</p>`))

	resetConfirmedTmpl = template.Must(template.New("reset_confirmed").Parse(
		`<p>Dear {{.Username}},</p>
<p>Your password has been successfully reset.</p>
<p>If you did not perform this action, please contact support immediately.</p>
<p>Best regards,<br>{{.BaseURL}} Team</p>`))

	profileUpdatedTmpl = template.Must(template.New("profile_updated").Parse(
		`<p>Dear {{.Username}},</p>
<p>Your profile has been successfully updated.</p>
<p>Thank you for keeping your information up-to-date.</p>
<p>Best regards,<br>{{.BaseURL}} Team</p>`))
)

type templateData struct {
	Username string
	OTP      string
	BaseURL  string
}

func render(t *template.Template, data templateData) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("template error: %w", err)
	}
	return b.String(), nil
}

// WelcomeBody renders the registration welcome message.
func WelcomeBody(username, baseURL string) (string, error) {
	return render(welcomeTmpl, templateData{Username: username, BaseURL: baseURL})
}

// ResetOTPBody renders the password-reset message carrying the OTP.
func ResetOTPBody(username, otp, baseURL string) (string, error) {
	return render(resetOTPTmpl, templateData{Username: username, OTP: otp, BaseURL: baseURL})
}

// ResetConfirmedBody renders the post-reset confirmation message.
func ResetConfirmedBody(username, baseURL string) (string, error) {
	return render(resetConfirmedTmpl, templateData{Username: username, BaseURL: baseURL})
}

// ProfileUpdatedBody renders the profile-update confirmation message.
func ProfileUpdatedBody(username, baseURL string) (string, error) {
	return render(profileUpdatedTmpl, templateData{Username: username, BaseURL: baseURL})
}
