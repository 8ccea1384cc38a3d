package notifier

import (
	"context"
	"go.uber.org/zap"
)

// LogNotifier : письма пишутся в лог, для локальной разработки
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.L()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, to, subject, htmlBody string) error {
	n.logger.Info("письмо",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", htmlBody),
	)
	return nil
}
