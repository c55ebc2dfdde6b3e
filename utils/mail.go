package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
	"path/filepath"

	"github.com/greenvalley/farmtodoor-api/models"
)

type EmailData struct {
	Name      string
	Message   string
	OrderID   uint
	Total     string
	ActionURL string
	LogoURL   string
}

func SendEmail(emailTo string, emailSubject string, data EmailData, templatePath string) error {

	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	err = tmpl.Execute(&body, data)
	if err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		os.Getenv("FROM_EMAIL"),
		emailSubject,
		body.String(),
	)

	auth := smtp.PlainAuth(
		"",
		os.Getenv("FROM_EMAIL"),
		os.Getenv("FROM_EMAIL_PASSWORD"),
		os.Getenv("FROM_EMAIL_SMTP"),
	)

	err = smtp.SendMail(os.Getenv("SMTP_ADDRESS"), auth, os.Getenv("FROM_EMAIL"), []string{emailTo}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendOrderConfirmation mails the customer their order receipt.
func SendOrderConfirmation(emailTo string, order models.Order) error {
	emailData := EmailData{
		Name:    order.UserName,
		Message: "Your order has been placed successfully and is being prepared for delivery.",
		OrderID: order.ID,
		Total:   FormatCurrency(order.Total),
		LogoURL: os.Getenv("FRONTEND_URL") + "/images/logo.png",
	}

	templatePath := filepath.Join("templates", "order_confirmation.html")
	return SendEmail(emailTo, fmt.Sprintf("Farm to Door Order #%d", order.ID), emailData, templatePath)
}

// SendPasswordResetEmail mails a password reset link.
func SendPasswordResetEmail(user models.User, resetToken string) error {
	emailData := EmailData{
		Name:      user.Name,
		Message:   "You requested a password reset. Click the button below to reset your password.",
		ActionURL: fmt.Sprintf("%s/reset-password/%s", os.Getenv("FRONTEND_URL"), resetToken),
		LogoURL:   os.Getenv("FRONTEND_URL") + "/images/logo.png",
	}

	templatePath := filepath.Join("templates", "reset_password.html")
	return SendEmail(user.Email, "Farm to Door Password Reset", emailData, templatePath)
}
