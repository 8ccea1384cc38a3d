package service

import (
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"context"
	"errors"
)

// errUnchanged : change не нашел, что менять, транзакция откатывается без ошибки
var errUnchanged = errors.New("account unchanged")

// updateAccount : блокирует запись, применяет change к свежему состоянию и сохраняет в той же транзакции.
// Переходы проверяются по заблокированной записи, а не по прочитанной ранее.
func updateAccount(ctx context.Context, store ports.CredentialStore, accountUUID string, change func(account *model.Account) error) (*model.Account, error) {
	var updated *model.Account
	err := store.WithinTx(ctx, func(tx ports.CredentialStore) error {
		account, err := tx.LockAccount(ctx, accountUUID)
		if err != nil {
			return err
		}
		if err := change(account); err != nil {
			return err
		}
		if err := tx.UpdateAccount(ctx, account); err != nil {
			return err
		}
		updated = account
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return nil, nil
	}
	return updated, err
}
