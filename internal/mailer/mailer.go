package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// Mailer отправляет письма через SMTP; без настроенного SMTP_HOST ссылка
// просто пишется в лог, чтобы локальная разработка не требовала почтового
// сервера
type Mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
	baseURL  string
}

func NewFromEnv() *Mailer {
	return &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		from:     os.Getenv("SMTP_FROM"),
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		baseURL:  os.Getenv("APP_URL"),
	}
}

func (m *Mailer) SendResetLink(email, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s&email=%s", m.baseURL, token, email)

	if m.host == "" {
		log.Printf("SMTP не настроен, ссылка для сброса пароля %s: %s", email, link)
		return nil
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Сброс пароля\r\n\r\nДля сброса пароля перейдите по ссылке: %s\r\n",
		m.from, email, link))

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.from, []string{email}, msg); err != nil {
		return fmt.Errorf("ошибка отправки письма: %v", err)
	}
	return nil
}
