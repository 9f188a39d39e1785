package email

import (
	"fmt"
	"net/smtp"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
)

// sendEmail picks a transport: SES when running in cloud mode, SMTP
// otherwise.
func sendEmail(recipient, subject, htmlBody, textBody string) error {
	if os.Getenv("IS_CLOUD") == "" {
		return sendEmailViaSMTP(recipient, subject, htmlBody, textBody)
	}
	return sendEmailViaSES(recipient, subject, htmlBody, textBody)
}

// sendEmailViaSES sends an email using AWS SES
func sendEmailViaSES(recipient, subject, htmlBody, textBody string) error {
	sess, err := session.NewSession()
	if err != nil {
		return fmt.Errorf("error creating AWS session: %v", err)
	}

	// Create an SES session.
	svc := ses.New(sess)

	// Assemble the email.
	input := &ses.SendEmailInput{
		Destination: &ses.Destination{
			ToAddresses: []*string{
				aws.String(recipient),
			},
		},
		Message: &ses.Message{
			Body: &ses.Body{
				Html: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(htmlBody),
				},
				Text: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(textBody),
				},
			},
			Subject: &ses.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
		},
		Source: aws.String(fromAddress()),
	}

	// Attempt to send the email.
	_, err = svc.SendEmail(input)

	return err
}

func sendEmailViaSMTP(recipient, subject, htmlBody, textBody string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASSWORD")

	if host == "" || port == "" {
		return fmt.Errorf("SMTP_HOST and SMTP_PORT must be set to send email via SMTP")
	}

	from := fromAddress()
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s", from, recipient, subject, htmlBody)
	if htmlBody == "" {
		msg = fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", from, recipient, subject, textBody)
	}

	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, password, host)
	}

	err := smtp.SendMail(host+":"+port, auth, from, []string{recipient}, []byte(msg))
	if err != nil {
		return fmt.Errorf("error sending email via SMTP: %v", err)
	}

	return nil
}

func fromAddress() string {
	if from := os.Getenv("EMAIL_FROM"); from != "" {
		return from
	}
	return "no-reply@inkwell.dev"
}
