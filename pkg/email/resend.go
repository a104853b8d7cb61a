package email

import (
	"bytes"
	"html/template"
	"os"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	log      *zap.Logger
}

func NewEmailService(log *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(os.Getenv("RESEND_API_KEY")),
		from:     os.Getenv("EMAIL_FROM_ADDRESS"),
		fromName: os.Getenv("EMAIL_FROM_NAME"),
		log:      log,
	}
}

const welcomeTemplate = `
<h2>Welcome, {{.FullName}}!</h2>
<p>Your account is ready and {{.Credits}} free credits are waiting for you.</p>
<p>Happy creating!</p>
<p>&copy; {{.Year}} Pixagen</p>`

const paymentApprovedTemplate = `
<h2>Payment approved</h2>
<p>Your payment for <strong>{{.PackageName}}</strong> has been verified and
{{.Credits}} credits were added to your balance.</p>
<p>&copy; {{.Year}} Pixagen</p>`

func (s *EmailService) SendWelcomeEmail(email, fullName string, credits int) error {
	html, err := renderTemplate(welcomeTemplate, map[string]interface{}{
		"FullName": fullName,
		"Credits":  credits,
		"Year":     time.Now().Year(),
	})
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Welcome to Pixagen!",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.log.Error("failed to send welcome email", zap.String("email", email), zap.Error(err))
		return err
	}

	s.log.Info("welcome email sent", zap.String("email", email), zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) SendPaymentApprovedEmail(email, packageName string, credits int) error {
	html, err := renderTemplate(paymentApprovedTemplate, map[string]interface{}{
		"PackageName": packageName,
		"Credits":     credits,
		"Year":        time.Now().Year(),
	})
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Your credits have arrived - Pixagen",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.log.Error("failed to send payment approved email", zap.String("email", email), zap.Error(err))
		return err
	}

	s.log.Info("payment approved email sent", zap.String("email", email), zap.String("id", resp.Id))
	return nil
}

func renderTemplate(tmpl string, data map[string]interface{}) (string, error) {
	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
