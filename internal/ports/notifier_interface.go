package ports

import (
	"auth-service/internal/model"
	"context"
	"time"
)

// Notifier : отправка писем, ошибки только логируются вызывающим
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// MailQueue : Redis очередь писем
type MailQueue interface {
	Push(ctx context.Context, message *model.MailMessage) error
	Pop(ctx context.Context, timeout time.Duration) (*model.MailMessage, error)
	Len(ctx context.Context) (int64, error)
}

// TemplateSource : источник html шаблонов писем
type TemplateSource interface {
	Load(ctx context.Context, name string) (string, error)
}

// MailComposer : тема и html тело писем со ссылками для пользователя
type MailComposer interface {
	VerificationEmail(ctx context.Context, link string) (subject, body string, err error)
	PasswordResetEmail(ctx context.Context, link string) (subject, body string, err error)
}
