package utils

import (
	"fmt"
	"log"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"virtualab/config"
)

// SendEmail sends an HTML email through SendGrid. Without an API key the
// message is only logged.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("[EMAIL] SENDGRID_API_KEY not set, skipping %q to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail(config.AppConfig.EmailSenderName, config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] sending %q to %s failed: %v", subject, toEmail, err)
		return errors.Wrap(err, "sendgrid send")
	}
	if response.StatusCode >= 300 {
		log.Printf("[EMAIL] SendGrid answered %d for %s: %s", response.StatusCode, toEmail, response.Body)
		return errors.Errorf("sendgrid status %d", response.StatusCode)
	}

	log.Printf("[EMAIL] %q sent to %s", subject, toEmail)
	return nil
}

// SendApprovalEmail tells a newly approved user their login credentials.
func SendApprovalEmail(fullName, email, username, password string) error {
	body := getEmailTemplate("Registration approved", fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>Your Virtual Lab account has been approved. You can now sign in with:</p>
		<div class="info-box">
			<p><strong>Username:</strong> %s</p>
			<p><strong>Password:</strong> %s</p>
		</div>
		<p>Please change your password after the first login.</p>
	`, fullName, username, password))
	return SendEmail(fullName, email, "Your Virtual Lab account is ready", body)
}

// SendRejectionEmail tells a user their registration was declined.
func SendRejectionEmail(fullName, email string) error {
	body := getEmailTemplate("Registration declined", fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>We could not approve your Virtual Lab registration. You are welcome to register again with corrected data.</p>
	`, fullName))
	return SendEmail(fullName, email, "Virtual Lab registration declined", body)
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1B4F72; padding: 24px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 22px; }
			.content { padding: 32px 24px; color: #1B2631; line-height: 1.6; }
			.info-box { background: #EBF5FB; padding: 12px 16px; border-radius: 4px; border-left: 4px solid #2E86C1; margin: 16px 0; }
			.footer { background-color: #F6F6F6; padding: 16px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">Virtual Lab</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}
