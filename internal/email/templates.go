package email

import (
	"html/template"
	"strings"
)

var passwordResetTmpl = template.Must(template.New("reset").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Password Reset Request</h2>
  <p>Hello {{.Name}},</p>
  <p>We received a request to reset your password. If you didn't make this request, you can ignore this email.</p>
  <p>To reset your password, click the link below:</p>
  <p>
    <a href="{{.Link}}" style="display: inline-block; padding: 10px 20px; background-color: #3b82f6; color: white; text-decoration: none; border-radius: 4px;">
      Reset Password
    </a>
  </p>
  <p>This link will expire in 1 hour.</p>
  <p>Thank you,<br/>The Team</p>
</div>
`))

var emailVerificationTmpl = template.Must(template.New("verify").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Email Verification Required</h2>
  <p>Hello {{.Name}},</p>
  <p>Thank you for signing up! To complete your registration, please verify your email address by clicking the link below:</p>
  <p>
    <a href="{{.Link}}" style="display: inline-block; padding: 10px 20px; background-color: #3b82f6; color: white; text-decoration: none; border-radius: 4px;">
      Verify Email
    </a>
  </p>
  <p>This link will expire in 24 hours.</p>
  <p>Thank you,<br/>The Team</p>
</div>
`))

type templateData struct {
	Name string
	Link string
}

func render(t *template.Template, name, link string) string {
	if name == "" {
		name = "there"
	}
	var b strings.Builder
	// Templates are compile-time constants; execution over two strings
	// cannot fail in practice.
	_ = t.Execute(&b, templateData{Name: name, Link: link})
	return b.String()
}

// PasswordResetHTML renders the reset-link email body.
func PasswordResetHTML(name, resetLink string) string {
	return render(passwordResetTmpl, name, resetLink)
}

// EmailVerificationHTML renders the verification-link email body.
func EmailVerificationHTML(name, verificationLink string) string {
	return render(emailVerificationTmpl, name, verificationLink)
}
