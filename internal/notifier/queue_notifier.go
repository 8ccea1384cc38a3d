package notifier

import (
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"context"
	"errors"
	"go.uber.org/zap"
	"time"
)

// QueueNotifier : складывает письма в очередь, доставкой занимается QueueWorker
type QueueNotifier struct {
	queue ports.MailQueue
}

func NewQueueNotifier(queue ports.MailQueue) *QueueNotifier {
	return &QueueNotifier{queue: queue}
}

func (n *QueueNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	return n.queue.Push(ctx, &model.MailMessage{
		To:        to,
		Subject:   subject,
		HTMLBody:  htmlBody,
		CreatedAt: time.Now().UTC(),
	})
}

// QueueWorker : забирает письма из очереди и отправляет через delivery
type QueueWorker struct {
	queue       ports.MailQueue
	delivery    ports.Notifier
	pollTimeout time.Duration
	sendTimeout time.Duration
}

func NewQueueWorker(queue ports.MailQueue, delivery ports.Notifier, pollTimeout, sendTimeout time.Duration) *QueueWorker {
	return &QueueWorker{
		queue:       queue,
		delivery:    delivery,
		pollTimeout: pollTimeout,
		sendTimeout: sendTimeout,
	}
}

// ProcessOnce : false, если очередь пуста.
// Неудачная доставка логируется, письмо не возвращается в очередь.
func (w *QueueWorker) ProcessOnce(ctx context.Context) (bool, error) {
	message, err := w.queue.Pop(ctx, w.pollTimeout)
	if err != nil {
		return false, err
	}
	if message == nil {
		return false, nil
	}

	sendCtx := ctx
	if w.sendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, w.sendTimeout)
		defer cancel()
	}

	if err := w.delivery.Send(sendCtx, message.To, message.Subject, message.HTMLBody); err != nil {
		zap.L().Warn("не удалось доставить письмо из очереди",
			zap.String("subject", message.Subject),
			zap.Time("queued_at", message.CreatedAt),
			zap.Error(err),
		)
	}

	return true, nil
}

// Run : работает до отмены ctx
func (w *QueueWorker) Run(ctx context.Context) {
	pending, err := w.queue.Len(ctx)
	if err != nil {
		zap.L().Warn("не удалось получить длину очереди писем", zap.Error(err))
	}
	zap.L().Info("обработчик очереди писем запущен", zap.Int64("pending", pending))
	for {
		select {
		case <-ctx.Done():
			zap.L().Info("обработчик очереди писем остановлен")
			return
		default:
		}

		processed, err := w.ProcessOnce(ctx)
		if err != nil && (errors.Is(err, context.Canceled) || ctx.Err() != nil) {
			continue
		}
		// пауза после ошибки Redis или пустого неблокирующего чтения
		if err != nil || (!processed && w.pollTimeout <= 0) {
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}
	}
}
