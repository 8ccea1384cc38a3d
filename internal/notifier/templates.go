package notifier

import (
	"auth-service/internal/ports"
	"bytes"
	"context"
	"embed"
	"fmt"
	"go.uber.org/zap"
	"html/template"
)

const (
	TemplateVerifyEmail   = "verify_email.html"
	TemplateResetPassword = "reset_password.html"

	subjectVerifyEmail   = "Подтверждение email"
	subjectResetPassword = "Сброс пароля"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// Templates : письма из html шаблонов.
// Шаблон берется из overrides (например, S3), при любой ошибке используется встроенный.
type Templates struct {
	overrides ports.TemplateSource
}

func NewTemplates(overrides ports.TemplateSource) *Templates {
	return &Templates{overrides: overrides}
}

func (t *Templates) VerificationEmail(ctx context.Context, link string) (string, string, error) {
	body, err := t.render(ctx, TemplateVerifyEmail, link)
	if err != nil {
		return "", "", err
	}
	return subjectVerifyEmail, body, nil
}

func (t *Templates) PasswordResetEmail(ctx context.Context, link string) (string, string, error) {
	body, err := t.render(ctx, TemplateResetPassword, link)
	if err != nil {
		return "", "", err
	}
	return subjectResetPassword, body, nil
}

func (t *Templates) render(ctx context.Context, name, link string) (string, error) {
	tmpl, err := template.New(name).Parse(t.load(ctx, name))
	if err != nil {
		return "", fmt.Errorf("ошибка разбора шаблона %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Link string }{Link: link}); err != nil {
		return "", fmt.Errorf("ошибка выполнения шаблона %s: %w", name, err)
	}

	return buf.String(), nil
}

func (t *Templates) load(ctx context.Context, name string) string {
	if t.overrides != nil {
		text, err := t.overrides.Load(ctx, name)
		if err == nil {
			_, err = template.New(name).Parse(text)
		}
		if err == nil && text != "" {
			return text
		}
		zap.L().Warn("шаблон письма не загружен, используется встроенный",
			zap.String("template", name), zap.Error(err))
	}

	data, err := embeddedTemplates.ReadFile("templates/" + name)
	if err != nil {
		// имена шаблонов фиксированы, сюда попасть нельзя
		panic(fmt.Sprintf("встроенный шаблон %s не найден", name))
	}
	return string(data)
}
