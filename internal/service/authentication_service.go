package service

import (
	"auth-service/config"
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"auth-service/internal/repository"
	"auth-service/internal/security"
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"net/url"
	"strings"
	"sync"
	"time"
)

const defaultSendTimeout = 10 * time.Second

// AuthenticationService : регистрация, подтверждение email, вход с 2FA,
// ротация refresh-токенов, выход и сброс пароля.
// Собственных блокировок нет, атомарность обеспечивает хранилище.
type AuthenticationService struct {
	cfg           *config.AppConfig
	store         ports.CredentialStore
	hasher        ports.PasswordHasher
	codec         ports.TokenCodec
	refreshTokens ports.RefreshTokenStore
	totp          ports.TOTPVerifier
	notifier      ports.Notifier
	composer      ports.MailComposer
	policy        PasswordPolicy
	now           func() time.Time

	notifications sync.WaitGroup
}

type Option func(*AuthenticationService)

// WithClock : источник времени для проверки TOTP кодов
func WithClock(now func() time.Time) Option {
	return func(s *AuthenticationService) {
		s.now = now
	}
}

func NewAuthenticationService(
	cfg *config.AppConfig,
	store ports.CredentialStore,
	hasher ports.PasswordHasher,
	codec ports.TokenCodec,
	refreshTokens ports.RefreshTokenStore,
	totp ports.TOTPVerifier,
	notifier ports.Notifier,
	composer ports.MailComposer,
	opts ...Option,
) *AuthenticationService {
	s := &AuthenticationService{
		cfg:           cfg,
		store:         store,
		hasher:        hasher,
		codec:         codec,
		refreshTokens: refreshTokens,
		totp:          totp,
		notifier:      notifier,
		composer:      composer,
		policy:        PasswordPolicy{MinLength: cfg.Password.MinLength},
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register : создает неподтвержденную учетную запись и отправляет письмо для подтверждения.
// Токены выдаются сразу, если это разрешено policy.issue_tokens_before_verification,
// иначе возвращается nil.
func (s *AuthenticationService) Register(ctx context.Context, registration model.Registration) (tokens *model.TokensPair, err error) {
	ctx, span := tracer.Start(ctx, "AuthenticationService.Register")
	defer func() { endSpan(span, err) }()

	email := NormalizeEmail(registration.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := s.policy.Validate(registration.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(registration.Password)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать хэш пароля: %w", err)
	}

	account := &model.Account{
		UUID:         uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(registration.FirstName),
		LastName:     strings.TrimSpace(registration.LastName),
		Phone:        strings.TrimSpace(registration.Phone),
		Active:       true,
		Verified:     false,
		TwoFactor:    model.DisabledTwoFactor(),
	}

	created, err := s.store.CreateAccount(ctx, account)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, fmt.Errorf("ошибка создания учетной записи: %w", err)
	}

	zap.L().Info("учетная запись создана", zap.String("account_uuid", created.UUID))
	s.sendVerificationEmail(created)

	if !s.cfg.IssueTokensOnRegister() {
		return nil, nil
	}

	return s.issueTokens(ctx, created)
}

// VerifyEmail : повторное подтверждение не ошибка
func (s *AuthenticationService) VerifyEmail(ctx context.Context, token string) (err error) {
	ctx, span := tracer.Start(ctx, "AuthenticationService.VerifyEmail")
	defer func() { endSpan(span, err) }()

	account, err := s.accountFromToken(ctx, token, security.PurposeEmailVerify)
	if err != nil {
		return err
	}

	if account.Verified {
		return nil
	}

	_, err = updateAccount(ctx, s.store, account.UUID, func(locked *model.Account) error {
		if locked.Verified {
			return errUnchanged
		}
		locked.Verified = true
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("не удалось подтвердить email: %w", err)
	}

	zap.L().Info("email подтвержден", zap.String("account_uuid", account.UUID))
	return nil
}

// ResendVerification : ответ не зависит от существования учетной записи
func (s *AuthenticationService) ResendVerification(ctx context.Context, email string) (err error) {
	ctx, span := tracer.Start(ctx, "AuthenticationService.ResendVerification")
	defer func() { endSpan(span, err) }()

	account, lookupErr := s.store.GetAccountByEmail(ctx, NormalizeEmail(email))
	if lookupErr != nil {
		if !errors.Is(lookupErr, repository.ErrNotFound) {
			zap.L().Error("ошибка поиска учетной записи", zap.Error(lookupErr))
		}
		return nil
	}

	if account.CanAuthenticate() && !account.Verified {
		s.sendVerificationEmail(account)
	}

	return nil
}

// Login : учетная запись активна -> пароль -> email подтвержден -> код 2FA -> токены.
// Неизвестный email и неверный пароль неразличимы, в том числе по времени ответа.
func (s *AuthenticationService) Login(ctx context.Context, credentials model.Credentials) (tokens *model.TokensPair, err error) {
	ctx, span := tracer.Start(ctx, "AuthenticationService.Login")
	defer func() { endSpan(span, err) }()

	email := NormalizeEmail(credentials.Email)

	account, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// пустой хэш запускает сравнение с фиктивным хэшем
			s.hasher.Verify(credentials.Password, "")
			s.reject("login", "unknown_account")
			return nil, ErrInvalidCredentials
		}
		if errors.Is(err, model.ErrTotpSecretMissing) {
			return nil, err
		}
		return nil, fmt.Errorf("ошибка получения учетной записи: %w", err)
	}

	passwordOK := s.hasher.Verify(credentials.Password, account.PasswordHash)
	if !account.CanAuthenticate() {
		s.reject("login", "inactive_account", zap.String("account_uuid", account.UUID))
		return nil, ErrInvalidCredentials
	}
	if !passwordOK {
		s.reject("login", "bad_password", zap.String("account_uuid", account.UUID))
		return nil, ErrInvalidCredentials
	}

	if !account.Verified {
		s.sendVerificationEmail(account)
		return nil, ErrAccountNotVerified
	}

	if account.TwoFactor.IsEnabled() {
		secret, ok := account.TwoFactor.Secret()
		if !ok || secret == "" {
			return nil, ErrTotpSecretMissing
		}
		if strings.TrimSpace(credentials.TOTPCode) == "" {
			return nil, ErrTwoFactorRequired
		}
		if !s.totp.Verify(secret, credentials.TOTPCode, s.now()) {
			s.reject("login", "bad_totp_code", zap.String("account_uuid", account.UUID))
			return nil, ErrInvalidTwoFactorCode
		}
	}

	s.upgradePasswordHash(ctx, account, credentials.Password)

	return s.issueTokens(ctx, account)
}

// Refresh : старый токен отзывается, выдается новая пара.
// Неизвестный, истекший и уже использованный токен дают одну и ту же ошибку.
func (s *AuthenticationService) Refresh(ctx context.Context, refreshToken string) (tokens *model.TokensPair, err error) {
	ctx, span := tracer.Start(ctx, "AuthenticationService.Refresh")
	defer func() { endSpan(span, err) }()

	accountUUID, newRefreshToken, err := s.refreshTokens.Rotate(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidOrExpiredRefreshToken) {
			return nil, ErrInvalidOrExpiredRefreshToken
		}
		return nil, fmt.Errorf("ошибка ротации refresh токена: %w", err)
	}

	account, err := s.store.GetAccountByUUID(ctx, accountUUID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("ошибка получения учетной записи: %w", err)
	}
	if !account.CanAuthenticate() {
		if revokeErr := s.refreshTokens.Revoke(ctx, newRefreshToken); revokeErr != nil {
			zap.L().Error("не удалось отозвать refresh токен", zap.Error(revokeErr))
		}
		s.reject("refresh", "inactive_account", zap.String("account_uuid", accountUUID))
		return nil, ErrInvalidOrExpiredRefreshToken
	}

	accessToken, err := s.codec.Issue(account.Email, security.PurposeAccess)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации access токена: %w", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		TokenType:    model.TokenTypeBearer,
	}, nil
}

// Logout : отзывает refresh-токен, повторный вызов не ошибка
func (s *AuthenticationService) Logout(ctx context.Context, refreshToken string) (err error) {
	ctx, span := tracer.Start(ctx, "AuthenticationService.Logout")
	defer func() { endSpan(span, err) }()

	if err := s.refreshTokens.Revoke(ctx, refreshToken); err != nil {
		return fmt.Errorf("не удалось отозвать токен: %w", err)
	}
	return nil
}

// ForgotPassword : письмо со ссылкой уходит только существующей активной учетной записи,
// ответ одинаковый в любом случае
func (s *AuthenticationService) ForgotPassword(ctx context.Context, email string) (err error) {
	ctx, span := tracer.Start(ctx, "AuthenticationService.ForgotPassword")
	defer func() { endSpan(span, err) }()

	account, lookupErr := s.store.GetAccountByEmail(ctx, NormalizeEmail(email))
	if lookupErr != nil {
		if errors.Is(lookupErr, repository.ErrNotFound) {
			s.reject("forgot_password", "unknown_account")
		} else {
			zap.L().Error("ошибка поиска учетной записи", zap.Error(lookupErr))
		}
		return nil
	}
	if !account.CanAuthenticate() {
		s.reject("forgot_password", "inactive_account", zap.String("account_uuid", account.UUID))
		return nil
	}

	token, issueErr := s.codec.Issue(account.Email, security.PurposePasswordReset)
	if issueErr != nil {
		zap.L().Error("ошибка генерации токена сброса пароля", zap.Error(issueErr))
		return nil
	}

	s.dispatch(account.Email, s.link("/reset-password", token), s.composer.PasswordResetEmail)
	return nil
}

// ResetPassword : токен не отзывается после использования и действует до истечения срока
func (s *AuthenticationService) ResetPassword(ctx context.Context, token, newPassword string) (err error) {
	ctx, span := tracer.Start(ctx, "AuthenticationService.ResetPassword")
	defer func() { endSpan(span, err) }()

	account, err := s.accountFromToken(ctx, token, security.PurposePasswordReset)
	if err != nil {
		return err
	}
	if !account.CanAuthenticate() {
		s.reject("reset_password", "inactive_account", zap.String("account_uuid", account.UUID))
		return ErrInvalidOrExpiredToken
	}

	if err := s.policy.Validate(newPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("не удалось создать хэш пароля: %w", err)
	}

	_, err = updateAccount(ctx, s.store, account.UUID, func(locked *model.Account) error {
		if !locked.CanAuthenticate() {
			return ErrInvalidOrExpiredToken
		}
		locked.PasswordHash = hash
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidOrExpiredToken) || errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("не удалось обновить пароль: %w", err)
	}

	zap.L().Info("пароль сброшен", zap.String("account_uuid", account.UUID))
	return nil
}

// Authenticate : учетная запись по access-токену
func (s *AuthenticationService) Authenticate(ctx context.Context, accessToken string) (account *model.Account, err error) {
	ctx, span := tracer.Start(ctx, "AuthenticationService.Authenticate")
	defer func() { endSpan(span, err) }()

	account, err = s.accountFromToken(ctx, accessToken, security.PurposeAccess)
	if err != nil {
		return nil, err
	}
	if !account.CanAuthenticate() {
		s.reject("authenticate", "inactive_account", zap.String("account_uuid", account.UUID))
		return nil, ErrInvalidOrExpiredToken
	}

	return account, nil
}

// SetupTwoFactor : новый секрет в состоянии pending, повторный вызов заменяет секрет
func (s *AuthenticationService) SetupTwoFactor(ctx context.Context, accountUUID string) (setup *model.TwoFactorSetup, err error) {
	ctx, span := tracer.Start(ctx, "AuthenticationService.SetupTwoFactor")
	defer func() { endSpan(span, err) }()

	var secret string
	account, err := s.transition(ctx, accountUUID, func(locked *model.Account) error {
		generated, err := s.totp.NewSecret()
		if err != nil {
			return err
		}
		pending, err := locked.TwoFactor.Begin(generated)
		if err != nil {
			return err
		}
		secret = generated
		locked.TwoFactor = pending
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &model.TwoFactorSetup{
		Secret:          secret,
		ProvisioningURI: s.totp.ProvisioningURI(secret, account.Email, s.cfg.TOTP.Issuer),
	}, nil
}

// EnableTwoFactor : pending -> enabled после проверки кода
func (s *AuthenticationService) EnableTwoFactor(ctx context.Context, accountUUID, code string) (err error) {
	ctx, span := tracer.Start(ctx, "AuthenticationService.EnableTwoFactor")
	defer func() { endSpan(span, err) }()

	account, err := s.transition(ctx, accountUUID, func(locked *model.Account) error {
		if locked.TwoFactor.Status() != model.TwoFactorPending {
			return ErrTwoFactorNotPending
		}
		secret, _ := locked.TwoFactor.Secret()
		if !s.totp.Verify(secret, code, s.now()) {
			s.reject("enable_2fa", "bad_totp_code", zap.String("account_uuid", locked.UUID))
			return ErrInvalidTwoFactorCode
		}
		enabled, err := locked.TwoFactor.Enable()
		if err != nil {
			return err
		}
		locked.TwoFactor = enabled
		return nil
	})
	if err != nil {
		return err
	}

	zap.L().Info("2FA включена", zap.String("account_uuid", account.UUID))
	return nil
}

// DisableTwoFactor : флаг и секрет сбрасываются вместе
func (s *AuthenticationService) DisableTwoFactor(ctx context.Context, accountUUID, code string) (err error) {
	ctx, span := tracer.Start(ctx, "AuthenticationService.DisableTwoFactor")
	defer func() { endSpan(span, err) }()

	account, err := s.transition(ctx, accountUUID, func(locked *model.Account) error {
		if !locked.TwoFactor.IsEnabled() {
			return ErrTwoFactorNotEnabled
		}
		secret, _ := locked.TwoFactor.Secret()
		if !s.totp.Verify(secret, code, s.now()) {
			s.reject("disable_2fa", "bad_totp_code", zap.String("account_uuid", locked.UUID))
			return ErrInvalidTwoFactorCode
		}
		disabled, err := locked.TwoFactor.Disable()
		if err != nil {
			return err
		}
		locked.TwoFactor = disabled
		return nil
	})
	if err != nil {
		return err
	}

	zap.L().Info("2FA отключена", zap.String("account_uuid", account.UUID))
	return nil
}

// Wait : дожидается отправки писем, запущенных сервисом
func (s *AuthenticationService) Wait() {
	s.notifications.Wait()
}

func (s *AuthenticationService) issueTokens(ctx context.Context, account *model.Account) (*model.TokensPair, error) {
	accessToken, err := s.codec.Issue(account.Email, security.PurposeAccess)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации access токена: %w", err)
	}

	refreshToken, err := s.refreshTokens.Issue(ctx, account.UUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации refresh токена: %w", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    model.TokenTypeBearer,
	}, nil
}

// accountFromToken : причина отказа пишется в лог, наружу всегда ErrInvalidOrExpiredToken
func (s *AuthenticationService) accountFromToken(ctx context.Context, token string, purpose security.Purpose) (*model.Account, error) {
	email, err := s.codec.Parse(token, purpose)
	if err != nil {
		s.reject(string(purpose), security.Reason(err))
		return nil, ErrInvalidOrExpiredToken
	}

	account, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.reject(string(purpose), "unknown_account")
			return nil, ErrInvalidOrExpiredToken
		}
		return nil, fmt.Errorf("ошибка получения учетной записи: %w", err)
	}

	return account, nil
}

// transition : изменение состояния 2FA активной учетной записи под блокировкой
func (s *AuthenticationService) transition(ctx context.Context, accountUUID string, change func(account *model.Account) error) (*model.Account, error) {
	account, err := updateAccount(ctx, s.store, accountUUID, func(locked *model.Account) error {
		if !locked.CanAuthenticate() {
			return ErrInvalidCredentials
		}
		return change(locked)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return account, nil
}

// upgradePasswordHash : перехэширование при смене алгоритма или параметров, ошибка не мешает входу
func (s *AuthenticationService) upgradePasswordHash(ctx context.Context, account *model.Account, password string) {
	if !s.hasher.NeedsRehash(account.PasswordHash) {
		return
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		zap.L().Warn("не удалось перехэшировать пароль", zap.String("account_uuid", account.UUID), zap.Error(err))
		return
	}

	verified := account.PasswordHash
	_, err = updateAccount(ctx, s.store, account.UUID, func(locked *model.Account) error {
		// пароль успели сменить, новый хэш старого пароля не нужен
		if locked.PasswordHash != verified {
			return errUnchanged
		}
		locked.PasswordHash = hash
		return nil
	})
	if err != nil {
		zap.L().Warn("не удалось сохранить новый хэш пароля", zap.String("account_uuid", account.UUID), zap.Error(err))
	}
}

func (s *AuthenticationService) sendVerificationEmail(account *model.Account) {
	token, err := s.codec.Issue(account.Email, security.PurposeEmailVerify)
	if err != nil {
		zap.L().Error("ошибка генерации токена подтверждения email", zap.Error(err))
		return
	}

	s.dispatch(account.Email, s.link("/verify-email", token), s.composer.VerificationEmail)
}

// dispatch : письмо уходит в фоне с отдельным контекстом, ошибки только логируются
func (s *AuthenticationService) dispatch(to, link string, compose func(ctx context.Context, link string) (string, string, error)) {
	timeout := s.cfg.Mail.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	s.notifications.Add(1)
	go func() {
		defer s.notifications.Done()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		subject, body, err := compose(ctx, link)
		if err != nil {
			zap.L().Warn("не удалось подготовить письмо", zap.Error(err))
			return
		}

		if err := s.notifier.Send(ctx, to, subject, body); err != nil {
			zap.L().Warn("не удалось отправить письмо", zap.String("subject", subject), zap.Error(err))
		}
	}()
}

func (s *AuthenticationService) link(path, token string) string {
	return strings.TrimRight(s.cfg.Frontend.BaseURL, "/") + path + "?token=" + url.QueryEscape(token)
}

func (s *AuthenticationService) reject(operation, reason string, fields ...zap.Field) {
	fields = append([]zap.Field{zap.String("operation", operation), zap.String("reason", reason)}, fields...)
	zap.L().Info("отказ в операции", fields...)
}
