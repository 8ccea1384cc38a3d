package notifier

import (
	"auth-service/config"
	"bufio"
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"mime"
	"net"
	"net/mail"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestBuildMessage(t *testing.T) {
	date := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	raw := buildMessage("no-reply@example.com", "user@example.com", "Сброс пароля", "<p>ссылка</p>", date)

	assert.Contains(t, string(raw), "\r\n\r\n<p>ссылка</p>")

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "no-reply@example.com", msg.Header.Get("From"))
	assert.Equal(t, "user@example.com", msg.Header.Get("To"))
	assert.Equal(t, "text/html; charset=UTF-8", msg.Header.Get("Content-Type"))

	decoded, err := new(mime.WordDecoder).DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Сброс пароля", decoded)

	sent, err := msg.Header.Date()
	require.NoError(t, err)
	assert.True(t, date.Equal(sent))
}

// fakeSMTPServer : минимальный SMTP сервер без STARTTLS и AUTH, возвращает принятое письмо
func fakeSMTPServer(t *testing.T) (string, <-chan string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	received := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		reader := bufio.NewReader(conn)
		reply := func(line string) { _, _ = conn.Write([]byte(line + "\r\n")) }

		reply("220 localhost ESMTP")
		var data strings.Builder
		inData := false
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			if inData {
				if line == ".\r\n" {
					inData = false
					received <- data.String()
					reply("250 OK")
					continue
				}
				data.WriteString(line)
				continue
			}

			switch cmd := strings.ToUpper(strings.TrimSpace(line)); {
			case strings.HasPrefix(cmd, "EHLO"):
				reply("250 localhost")
			case strings.HasPrefix(cmd, "DATA"):
				inData = true
				reply("354 go ahead")
			case strings.HasPrefix(cmd, "QUIT"):
				reply("221 bye")
				return
			default:
				reply("250 OK")
			}
		}
	}()

	return ln.Addr().String(), received
}

func TestSMTPNotifier_Send(t *testing.T) {
	addr, received := fakeSMTPServer(t)
	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	portNum, err := strconv.Atoi(port)
	require.NoError(t, err)

	notifier := NewSMTPNotifier(config.MailConfig{
		From:     "no-reply@example.com",
		SMTPHost: host,
		SMTPPort: portNum,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, notifier.Send(ctx, "user@example.com", "Тема", "<p>тело</p>"))

	select {
	case data := <-received:
		assert.Contains(t, data, "To: user@example.com")
		assert.Contains(t, data, "<p>тело</p>")
	case <-time.After(5 * time.Second):
		t.Fatal("письмо не получено")
	}
}

func TestSMTPNotifier_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().(*net.TCPAddr)
	require.NoError(t, ln.Close())

	notifier := NewSMTPNotifier(config.MailConfig{SMTPHost: "127.0.0.1", SMTPPort: addr.Port})
	assert.Error(t, notifier.Send(context.Background(), "user@example.com", "s", "b"))
}

func TestLogNotifier_Send(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	notifier := NewLogNotifier(zap.New(core))

	require.NoError(t, notifier.Send(context.Background(), "user@example.com", "Тема", "<p>тело</p>"))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "user@example.com", fields["to"])
	assert.Equal(t, "Тема", fields["subject"])
}
