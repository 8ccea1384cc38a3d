package service_test

import (
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"auth-service/internal/security"
	"context"
	"github.com/stretchr/testify/mock"
	"net/url"
	"sync"
	"time"
)

// ===== MOCKS =====

// MockCredentialStore
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	args := m.Called(ctx, email)
	if a, ok := args.Get(0).(*model.Account); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCredentialStore) GetAccountByUUID(ctx context.Context, uuid string) (*model.Account, error) {
	args := m.Called(ctx, uuid)
	if a, ok := args.Get(0).(*model.Account); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCredentialStore) CreateAccount(ctx context.Context, account *model.Account) (*model.Account, error) {
	args := m.Called(ctx, account)
	if a, ok := args.Get(0).(*model.Account); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCredentialStore) LockAccount(ctx context.Context, uuid string) (*model.Account, error) {
	args := m.Called(ctx, uuid)
	if a, ok := args.Get(0).(*model.Account); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCredentialStore) UpdateAccount(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockCredentialStore) CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockCredentialStore) FindActiveRefreshToken(ctx context.Context, tokenHash string, now time.Time) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash, now)
	if t, ok := args.Get(0).(*model.RefreshToken); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCredentialStore) RevokeRefreshToken(ctx context.Context, tokenHash string, now time.Time) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash, now)
	if t, ok := args.Get(0).(*model.RefreshToken); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithinTx : без транзакции, fn получает сам мок
func (m *MockCredentialStore) WithinTx(ctx context.Context, fn func(store ports.CredentialStore) error) error {
	return fn(m)
}

// MockPasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(plaintext, digest string) bool {
	args := m.Called(plaintext, digest)
	return args.Bool(0)
}

func (m *MockPasswordHasher) NeedsRehash(digest string) bool {
	args := m.Called(digest)
	return args.Bool(0)
}

// MockTokenCodec
type MockTokenCodec struct {
	mock.Mock
}

func (m *MockTokenCodec) Issue(subject string, purpose security.Purpose) (string, error) {
	args := m.Called(subject, purpose)
	return args.String(0), args.Error(1)
}

func (m *MockTokenCodec) Parse(token string, expected security.Purpose) (string, error) {
	args := m.Called(token, expected)
	return args.String(0), args.Error(1)
}

// MockRefreshTokenStore
type MockRefreshTokenStore struct {
	mock.Mock
}

func (m *MockRefreshTokenStore) Issue(ctx context.Context, accountUUID string) (string, error) {
	args := m.Called(ctx, accountUUID)
	return args.String(0), args.Error(1)
}

func (m *MockRefreshTokenStore) Validate(ctx context.Context, token string) (string, bool, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockRefreshTokenStore) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenStore) Rotate(ctx context.Context, oldToken string) (string, string, error) {
	args := m.Called(ctx, oldToken)
	return args.String(0), args.String(1), args.Error(2)
}

// MockTOTPVerifier
type MockTOTPVerifier struct {
	mock.Mock
}

func (m *MockTOTPVerifier) NewSecret() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockTOTPVerifier) ProvisioningURI(secret, accountLabel, issuer string) string {
	args := m.Called(secret, accountLabel, issuer)
	return args.String(0)
}

func (m *MockTOTPVerifier) Verify(secret, code string, now time.Time) bool {
	args := m.Called(secret, code, now)
	return args.Bool(0)
}

// ==== ЗАГЛУШКИ ДЛЯ ПОЧТЫ ====

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// recordingNotifier : запоминает письма, вызывается из горутин сервиса
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (n *recordingNotifier) Send(_ context.Context, to, subject, htmlBody string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return n.err
}

func (n *recordingNotifier) Sent() []sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]sentMail, len(n.sent))
	copy(out, n.sent)
	return out
}

// lastToken : токен из ссылки последнего письма с указанной темой
func (n *recordingNotifier) lastToken(subject string) string {
	sent := n.Sent()
	for i := len(sent) - 1; i >= 0; i-- {
		if sent[i].Subject != subject {
			continue
		}
		link, err := url.Parse(sent[i].Body)
		if err != nil {
			return ""
		}
		return link.Query().Get("token")
	}
	return ""
}

const (
	subjectVerify = "verify"
	subjectReset  = "reset"
)

// linkComposer : тело письма - сама ссылка
type linkComposer struct{}

func (linkComposer) VerificationEmail(_ context.Context, link string) (string, string, error) {
	return subjectVerify, link, nil
}

func (linkComposer) PasswordResetEmail(_ context.Context, link string) (string, string, error) {
	return subjectReset, link, nil
}

// testClock : управляемое время для кодека, refresh-токенов и TOTP
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
