package tools

import (
	"fmt"
	"log"
	"time"

	"gopkg.in/gomail.v2"
)

// Mailer envia e-mails transacionais via SMTP.
type Mailer struct {
	Host      string
	Port      int
	User      string
	Pass      string
	From      string
	PublicURL string
	Timeout   time.Duration
}

func NewMailer(host string, port int, user, pass, from, publicURL string, timeout time.Duration) *Mailer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Mailer{
		Host:      host,
		Port:      port,
		User:      user,
		Pass:      pass,
		From:      from,
		PublicURL: publicURL,
		Timeout:   timeout,
	}
}

// SendPasswordReset manda o link de recuperação de senha (texto puro).
// Sem config de SMTP o envio vira no-op logado — útil em dev e garante que
// o fluxo de "esqueci minha senha" nunca quebra a request por causa do
// transporte.
func (m *Mailer) SendPasswordReset(toEmail string, token string) error {
	link := fmt.Sprintf("%s/reset/%s", m.PublicURL, token)

	if m.Host == "" || m.From == "" {
		log.Printf("mailer: smtp config missing, skip send (reset link: %s)", link)
		return nil
	}

	body := "Olá!\n\n" +
		"Recebemos um pedido para redefinir a sua senha na Frutaria.\n" +
		"Para criar uma senha nova, acesse o link abaixo (válido por 1 hora):\n\n" +
		link + "\n\n" +
		"Se você não pediu isso, pode ignorar este e-mail.\n"

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "[Frutaria] Recuperação de senha")
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.Host, m.Port, m.User, m.Pass)

	// gomail não aceita context; o select limita o tempo total de
	// dial+send pra request não ficar presa em SMTP lento.
	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send email: %w", err)
		}
		return nil
	case <-time.After(m.Timeout):
		return fmt.Errorf("send email: timed out after %s", m.Timeout)
	}
}
