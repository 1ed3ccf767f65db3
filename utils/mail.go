package utils

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type MailConfig struct {
	From     string
	Password string
	SMTPHost string
	Address  string
}

func (c MailConfig) Enabled() bool {
	return c.From != "" && c.Address != ""
}

type OrderEmailLine struct {
	Title    string
	Quantity int
	Price    string
}

type OrderEmailData struct {
	Email      string
	OrderID    string
	Total      string
	Address    string
	City       string
	Country    string
	PostalCode string
	Items      []OrderEmailLine
}

func RenderTemplate(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}

func SendEmail(cfg MailConfig, emailTo string, emailSubject string, templateName string, data any) error {
	body, err := RenderTemplate(templateName, data)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		cfg.From,
		emailTo,
		emailSubject,
		body,
	)

	auth := smtp.PlainAuth("", cfg.From, cfg.Password, cfg.SMTPHost)

	err = smtp.SendMail(cfg.Address, auth, cfg.From, []string{emailTo}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
