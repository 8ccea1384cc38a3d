package service

import (
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"auth-service/internal/repository"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"strings"
)

// UserService : профиль владельца учетной записи
type UserService struct {
	store  ports.CredentialStore
	hasher ports.PasswordHasher
	policy PasswordPolicy
}

func NewUserService(store ports.CredentialStore, hasher ports.PasswordHasher, policy PasswordPolicy) *UserService {
	return &UserService{
		store:  store,
		hasher: hasher,
		policy: policy,
	}
}

func (s *UserService) GetProfile(ctx context.Context, accountUUID string) (*model.Account, error) {
	account, err := s.activeAccount(ctx, accountUUID)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// UpdateProfile : email не меняется, пустые поля очищаются
func (s *UserService) UpdateProfile(ctx context.Context, accountUUID string, update model.ProfileUpdate) (*model.Account, error) {
	account, err := s.update(ctx, accountUUID, func(locked *model.Account) error {
		locked.FirstName = strings.TrimSpace(update.FirstName)
		locked.LastName = strings.TrimSpace(update.LastName)
		locked.Phone = strings.TrimSpace(update.Phone)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// ChangePassword : требует текущий пароль
func (s *UserService) ChangePassword(ctx context.Context, accountUUID, currentPassword, newPassword string) error {
	account, err := s.activeAccount(ctx, accountUUID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(currentPassword, account.PasswordHash) {
		return ErrInvalidCredentials
	}

	if err := s.policy.Validate(newPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	verified := account.PasswordHash
	_, err = s.update(ctx, accountUUID, func(locked *model.Account) error {
		// текущий пароль проверялся по хэшу, который уже заменен
		if locked.PasswordHash != verified {
			return ErrInvalidCredentials
		}
		locked.PasswordHash = hash
		return nil
	})
	if err != nil {
		return err
	}

	zap.L().Info("пароль изменен", zap.String("account_uuid", account.UUID))
	return nil
}

// Deactivate : мягкое удаление, учетная запись остается в хранилище с active=false
func (s *UserService) Deactivate(ctx context.Context, accountUUID, password string) error {
	account, err := s.activeAccount(ctx, accountUUID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return ErrInvalidCredentials
	}

	verified := account.PasswordHash
	_, err = s.update(ctx, accountUUID, func(locked *model.Account) error {
		if locked.PasswordHash != verified {
			return ErrInvalidCredentials
		}
		locked.Active = false
		return nil
	})
	if err != nil {
		return err
	}

	zap.L().Info("учетная запись деактивирована", zap.String("account_uuid", account.UUID))
	return nil
}

// update : изменение активной учетной записи под блокировкой строки
func (s *UserService) update(ctx context.Context, accountUUID string, change func(account *model.Account) error) (*model.Account, error) {
	account, err := updateAccount(ctx, s.store, accountUUID, func(locked *model.Account) error {
		if !locked.CanAuthenticate() {
			return ErrInvalidCredentials
		}
		return change(locked)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrInvalidCredentials
		case errors.Is(err, ErrInvalidCredentials):
			return nil, err
		}
		return nil, fmt.Errorf("[UserService] не удалось обновить учетную запись: %w", err)
	}
	return account, nil
}

func (s *UserService) activeAccount(ctx context.Context, accountUUID string) (*model.Account, error) {
	account, err := s.store.GetAccountByUUID(ctx, accountUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("[UserService] пользователь не найден: %w", err)
	}
	if !account.CanAuthenticate() {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}
