package repository

import (
	"auth-service/config"
	"auth-service/internal/model"
	"auth-service/internal/util"
	"context"
	"encoding/json"
	"errors"
	"github.com/redis/go-redis/v9"
	"time"
)

// MailQueueRepository : очередь писем в Redis списке, LPUSH на запись и BRPOP на чтение
type MailQueueRepository struct {
	client *config.RedisClient
	key    string
}

func NewMailQueueRepository(rdb *config.RedisClient, key string) *MailQueueRepository {
	return &MailQueueRepository{client: rdb, key: key}
}

func (r *MailQueueRepository) Push(ctx context.Context, message *model.MailMessage) error {
	data, err := json.Marshal(message)
	if err != nil {
		return util.LogError("ошибка сериализации письма", err)
	}

	if err := r.client.Client.LPush(ctx, r.key, data).Err(); err != nil {
		return util.LogError("ошибка сохранения письма в Redis", err)
	}

	return nil
}

// Pop : ждёт письмо не дольше timeout, при пустой очереди возвращает nil, nil.
// timeout <= 0 означает неблокирующее чтение.
func (r *MailQueueRepository) Pop(ctx context.Context, timeout time.Duration) (*model.MailMessage, error) {
	var (
		val string
		err error
	)

	if timeout > 0 {
		var res []string
		res, err = r.client.Client.BRPop(ctx, timeout, r.key).Result()
		if err == nil && len(res) == 2 {
			val = res[1]
		}
	} else {
		val, err = r.client.Client.RPop(ctx, r.key).Result()
	}

	if errors.Is(err, redis.Nil) {
		return nil, nil // очередь пуста
	} else if err != nil {
		return nil, util.LogError("ошибка чтения письма из Redis", err)
	}

	var message model.MailMessage
	if err := json.Unmarshal([]byte(val), &message); err != nil {
		return nil, util.LogError("ошибка десериализации письма из очереди", err)
	}
	return &message, nil
}

func (r *MailQueueRepository) Len(ctx context.Context) (int64, error) {
	n, err := r.client.Client.LLen(ctx, r.key).Result()
	if err != nil {
		return 0, util.LogError("ошибка получения длины очереди", err)
	}
	return n, nil
}
