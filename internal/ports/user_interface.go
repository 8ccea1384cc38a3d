package ports

import (
	"auth-service/internal/model"
	"context"
	"time"
)

// CredentialStore : хранилище учетных записей и refresh-токенов.
// Каждый метод - отдельная операция, атомарность нескольких шагов только через WithinTx.
type CredentialStore interface {
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	GetAccountByUUID(ctx context.Context, uuid string) (*model.Account, error)
	CreateAccount(ctx context.Context, account *model.Account) (*model.Account, error)
	// LockAccount : чтение с блокировкой строки до конца транзакции, имеет смысл только внутри WithinTx
	LockAccount(ctx context.Context, uuid string) (*model.Account, error)
	// UpdateAccount : перезаписывает все изменяемые поля, вызывается после LockAccount в той же транзакции
	UpdateAccount(ctx context.Context, account *model.Account) error
	CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error
	FindActiveRefreshToken(ctx context.Context, tokenHash string, now time.Time) (*model.RefreshToken, error)
	// RevokeRefreshToken : отзывает неотозванную запись и возвращает её,
	// если такой записи нет - repository.ErrNotFound
	RevokeRefreshToken(ctx context.Context, tokenHash string, now time.Time) (*model.RefreshToken, error)
	// WithinTx : выполняет fn в одной транзакции, при ошибке fn изменения откатываются
	WithinTx(ctx context.Context, fn func(store CredentialStore) error) error
}

type UserService interface {
	GetProfile(ctx context.Context, accountUUID string) (*model.Account, error)
	UpdateProfile(ctx context.Context, accountUUID string, update model.ProfileUpdate) (*model.Account, error)
	ChangePassword(ctx context.Context, accountUUID, currentPassword, newPassword string) error
	Deactivate(ctx context.Context, accountUUID, password string) error
}
