// Package sender реализует отправку письма со ссылкой активации учётной записи.
//
// Сервис вызывается синхронно из регистрации: вызывающая сторона дожидается
// результата отправки, повторных попыток при ошибке нет.
package sender

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/oforha-ai/account-service/internal/lib/sl"
	"github.com/oforha-ai/account-service/internal/lib/smtp"
)

// SenderService отправляет письма активации через SMTP транспорт.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport smtp.TransportInterface) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendActivationEmail отправляет письмо со ссылкой активации на адрес email.
func (s *SenderService) SendActivationEmail(email, username, activationLink string) error {
	to := []string{email}
	subject := "Activate your account"
	bodyText := fmt.Sprintf("Hello, %s!\n\nClick the following link to activate your account:\n%s\n\nIf you did not sign up, ignore this message.",
		username, activationLink)

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSender(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("Failed to connect to SMTP server", "error", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSender()); err != nil {
		s.log.Error("Failed to set MAIL FROM", "from", s.transport.GetSender(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("Failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("Failed to get Data writer", "error", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("Failed to write message body", "error", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("Failed to close Data writer", "error", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("Failed to quit SMTP session", "error", sl.Err(err))
		return err
	}

	return nil
}
