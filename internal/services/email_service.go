package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"jobboard/internal/models"
)

type EmailService interface {
	SendOTPEmail(email, code, purpose string) error
	SendWelcomeEmail(email, firstName string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func otpSubject(purpose string) string {
	switch purpose {
	case models.PurposeSignup:
		return "Confirm your registration"
	case models.PurposeLogin:
		return "Your login code"
	case models.PurposeForgotPassword:
		return "Password reset code"
	}
	return "Your verification code"
}

func (s *emailService) SendOTPEmail(email, code, purpose string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", otpSubject(purpose))

	body := fmt.Sprintf(`
		<h3>%s</h3>
		<p>Your verification code is: <strong>%s</strong></p>
		<p>The code expires in 10 minutes. If you did not request it, you can ignore this email.</p>
	`, otpSubject(purpose), code)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}

func (s *emailService) SendWelcomeEmail(email, firstName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to JobBoard!")

	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your account has been successfully created.</p>
		<p>You can now browse jobs, save favorites and apply in one click.</p>
		<p>Best regards,<br>The JobBoard Team</p>
	`, firstName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}
