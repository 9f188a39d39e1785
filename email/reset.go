package email

import (
	"fmt"
	"log"
	"os"

	"github.com/atotto/clipboard"
	"github.com/gen2brain/beeep"
)

func SendResetCodeEmail(email string, code string) error {
	// Check if the environment is production
	if os.Getenv("GOENV") == "production" {
		subject := "Your Password Reset Code"
		htmlBody := fmt.Sprintf("<p>Hi there,</p><p>Your password reset code is:<br><strong>%s</strong></p><p>It will be valid for the next 15 minutes. If you didn't request a reset, you can ignore this email.</p>", code)
		textBody := fmt.Sprintf("Hi there,\n\nYour password reset code is:\n%s\n\nIt will be valid for the next 15 minutes. If you didn't request a reset, you can ignore this email.", code)

		return sendEmail(email, subject, htmlBody, textBody)
	}

	if os.Getenv("GOENV") == "development" {
		// Development environment
		log.Printf("Development mode: Reset code is %s for email %s", code, email)

		// Copy code to clipboard
		clipboard.WriteAll(code) // ignore error

		// Send notification
		beeep.Notify("Reset Code", fmt.Sprintf("Reset code %s copied to clipboard for %s", code, email), "") // ignore error
	}

	return nil
}
