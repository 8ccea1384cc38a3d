package notifier

import (
	"auth-service/config"
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"time"
)

type SMTPNotifier struct {
	host     string
	addr     string
	from     string
	username string
	password string
}

func NewSMTPNotifier(cfg config.MailConfig) *SMTPNotifier {
	return &SMTPNotifier{
		host:     cfg.SMTPHost,
		addr:     net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort)),
		from:     cfg.From,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

// Send : STARTTLS, если сервер его поддерживает, и PLAIN авторизация при заданном логине
func (n *SMTPNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", n.addr)
	if err != nil {
		return fmt.Errorf("ошибка подключения к SMTP серверу: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, n.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("ошибка SMTP рукопожатия: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: n.host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("ошибка STARTTLS: %w", err)
		}
	}

	if n.username != "" {
		if err := client.Auth(smtp.PlainAuth("", n.username, n.password, n.host)); err != nil {
			return fmt.Errorf("ошибка SMTP авторизации: %w", err)
		}
	}

	if err := client.Mail(n.from); err != nil {
		return fmt.Errorf("ошибка MAIL FROM: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("ошибка RCPT TO: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("ошибка DATA: %w", err)
	}
	if _, err := w.Write(buildMessage(n.from, to, subject, htmlBody, time.Now())); err != nil {
		_ = w.Close()
		return fmt.Errorf("ошибка записи письма: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("ошибка отправки письма: %w", err)
	}

	return client.Quit()
}

func buildMessage(from, to, subject, htmlBody string, date time.Time) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", date.Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(htmlBody)
	return buf.Bytes()
}
