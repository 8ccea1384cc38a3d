package service

import (
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"auth-service/internal/repository"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"time"
)

// 256 бит энтропии
const refreshTokenBytes = 32

// RefreshTokenService : непрозрачные одноразовые refresh-токены.
// Клиент получает случайное значение, в хранилище попадает только его sha256.
type RefreshTokenService struct {
	store ports.CredentialStore
	ttl   time.Duration
	now   func() time.Time
}

func NewRefreshTokenService(store ports.CredentialStore, ttl time.Duration, now func() time.Time) *RefreshTokenService {
	if now == nil {
		now = time.Now
	}
	return &RefreshTokenService{store: store, ttl: ttl, now: now}
}

// Issue : новый токен для учетной записи
func (s *RefreshTokenService) Issue(ctx context.Context, accountUUID string) (string, error) {
	return s.issue(ctx, s.store, accountUUID)
}

func (s *RefreshTokenService) issue(ctx context.Context, store ports.CredentialStore, accountUUID string) (string, error) {
	value, err := generateRefreshToken()
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	record := &model.RefreshToken{
		UUID:        uuid.NewString(),
		AccountUUID: accountUUID,
		TokenHash:   HashRefreshToken(value),
		ExpireAt:    now.Add(s.ttl),
		CreatedAt:   now,
	}

	if err := store.CreateRefreshToken(ctx, record); err != nil {
		return "", fmt.Errorf("ошибка сохранения refresh токена: %w", err)
	}

	return value, nil
}

// Validate : UUID владельца, если токен существует, не отозван и не истек.
// Отсутствие и отзыв для вызывающего неразличимы: ("", false, nil).
func (s *RefreshTokenService) Validate(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}

	record, err := s.store.FindActiveRefreshToken(ctx, HashRefreshToken(token), s.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("ошибка проверки refresh токена: %w", err)
	}

	return record.AccountUUID, true, nil
}

// Revoke : идемпотентно, неизвестный или уже отозванный токен не ошибка
func (s *RefreshTokenService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	_, err := s.store.RevokeRefreshToken(ctx, HashRefreshToken(token), s.now().UTC())
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("ошибка отзыва refresh токена: %w", err)
	}

	return nil
}

// Rotate : проверка, отзыв старого и выпуск нового токена в одной транзакции.
// Из двух одновременных вызовов с одним токеном успешен только один.
func (s *RefreshTokenService) Rotate(ctx context.Context, oldToken string) (string, string, error) {
	if oldToken == "" {
		return "", "", ErrInvalidOrExpiredRefreshToken
	}

	var accountUUID, newToken string
	err := s.store.WithinTx(ctx, func(store ports.CredentialStore) error {
		now := s.now().UTC()

		revoked, err := store.RevokeRefreshToken(ctx, HashRefreshToken(oldToken), now)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				zap.L().Info("отказ в обновлении токена", zap.String("reason", "unknown_or_revoked"))
				return ErrInvalidOrExpiredRefreshToken
			}
			return err
		}
		if !now.Before(revoked.ExpireAt) {
			zap.L().Info("отказ в обновлении токена", zap.String("reason", "expired"),
				zap.String("token_uuid", revoked.UUID))
			return ErrInvalidOrExpiredRefreshToken
		}

		issued, err := s.issue(ctx, store, revoked.AccountUUID)
		if err != nil {
			return err
		}

		accountUUID = revoked.AccountUUID
		newToken = issued
		return nil
	})
	if err != nil {
		return "", "", err
	}

	return accountUUID, newToken, nil
}

// HashRefreshToken : ключ поиска токена в хранилище
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func generateRefreshToken() (string, error) {
	raw := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("ошибка генерации refresh токена: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
