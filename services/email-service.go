package services

import (
	"fmt"
	"net/smtp"
	"os"
	"time"

	"uptask-project/backend/logging"

	"github.com/sony/gobreaker"
)

// EmailService delivers account emails over SMTP. Sends go through a circuit
// breaker that opens after consecutive relay failures.
type EmailService struct {
	Host        string
	Port        string
	From        string
	Password    string
	FrontendURL string
	Breaker     *gobreaker.CircuitBreaker
}

func NewEmailService() *EmailService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "SMTPBreaker",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	return &EmailService{
		Host:        os.Getenv("SMTP_HOST"),
		Port:        os.Getenv("SMTP_PORT"),
		From:        os.Getenv("FROM_EMAIL"),
		Password:    os.Getenv("SMTP_PASS"),
		FrontendURL: os.Getenv("FRONTEND_URL"),
		Breaker:     breaker,
	}
}

// Send delivers a single HTML email. Callers treat failure as non-fatal, a
// lost email never aborts the data mutation that triggered it.
func (s *EmailService) Send(to, subject, body string) error {
	if s.Password == "" {
		return fmt.Errorf("SMTP_PASS is not set")
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + s.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", s.From, s.Password, s.Host)

	_, err := s.Breaker.Execute(func() (interface{}, error) {
		return nil, smtp.SendMail(s.Host+":"+s.Port, auth, s.From, []string{to}, message)
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// SendConfirmationEmail mails the 6-digit confirmation code to a new or still
// unconfirmed account.
func (s *EmailService) SendConfirmationEmail(to, name, code string) {
	subject := "Confirm your account"
	body := BuildConfirmationBody(name, code, s.FrontendURL)
	if err := s.Send(to, subject, body); err != nil {
		logging.Logger.Errorf("Event ID: EMAIL_SEND_FAILED, Description: Failed to send confirmation email to '%s': %v", to, err)
		return
	}
	logging.Logger.Infof("Event ID: EMAIL_SENT, Description: Confirmation email sent to '%s'", to)
}

// SendPasswordResetEmail mails the 6-digit reset code.
func (s *EmailService) SendPasswordResetEmail(to, name, code string) {
	subject := "Reset your password"
	body := BuildPasswordResetBody(name, code, s.FrontendURL)
	if err := s.Send(to, subject, body); err != nil {
		logging.Logger.Errorf("Event ID: EMAIL_SEND_FAILED, Description: Failed to send password reset email to '%s': %v", to, err)
		return
	}
	logging.Logger.Infof("Event ID: EMAIL_SENT, Description: Password reset email sent to '%s'", to)
}

func BuildConfirmationBody(name, code, frontendURL string) string {
	return fmt.Sprintf(`
		<h1>Welcome to UpTask</h1>
		<p>Hi %s.</p>
		<p>Thanks for signing up. To finish creating your account, please confirm your email address.</p>
		<p>Click the following link to confirm your account: <a href="%s/auth/confirm-account">confirm account</a></p>
		<p>Your 6-digit verification code is: <b>%s</b></p>
		<p>This code expires in 10 minutes.</p>
		<p>If you did not request this account, simply ignore this email.</p>`,
		name, frontendURL, code)
}

func BuildPasswordResetBody(name, code, frontendURL string) string {
	return fmt.Sprintf(`
		<h1>Reset your UpTask password</h1>
		<p>Hi %s.</p>
		<p>We received a request to reset the password of your account.</p>
		<p>To proceed, click the following link: <a href="%s/auth/new-password">reset password</a></p>
		<p>Your verification code is: <b>%s</b></p>
		<p>This code expires in 10 minutes.</p>
		<p>If you did not request this change, you can ignore this message, your account is safe.</p>`,
		name, frontendURL, code)
}
