package repository

import (
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore : хранилище в памяти для локального запуска (storage.driver=memory) и тестов.
// WithinTx держит блокировку на всё время fn, поэтому транзакции выполняются строго по очереди.
type MemoryStore struct {
	mu    sync.Mutex
	state *memoryState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: newMemoryState()}
}

func (s *MemoryStore) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.GetAccountByEmail(ctx, email)
}

func (s *MemoryStore) GetAccountByUUID(ctx context.Context, uuid string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.GetAccountByUUID(ctx, uuid)
}

func (s *MemoryStore) CreateAccount(ctx context.Context, account *model.Account) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CreateAccount(ctx, account)
}

func (s *MemoryStore) LockAccount(ctx context.Context, uuid string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.LockAccount(ctx, uuid)
}

func (s *MemoryStore) UpdateAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.UpdateAccount(ctx, account)
}

func (s *MemoryStore) CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CreateRefreshToken(ctx, token)
}

func (s *MemoryStore) FindActiveRefreshToken(ctx context.Context, tokenHash string, now time.Time) (*model.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.FindActiveRefreshToken(ctx, tokenHash, now)
}

func (s *MemoryStore) RevokeRefreshToken(ctx context.Context, tokenHash string, now time.Time) (*model.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.RevokeRefreshToken(ctx, tokenHash, now)
}

// WithinTx : при ошибке fn состояние восстанавливается из снимка
func (s *MemoryStore) WithinTx(ctx context.Context, fn func(store ports.CredentialStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(s.state); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

// memoryState : данные без блокировок, используется под мьютексом MemoryStore
type memoryState struct {
	accounts map[string]model.Account
	emails   map[string]string
	tokens   map[string]model.RefreshToken
}

func newMemoryState() *memoryState {
	return &memoryState{
		accounts: make(map[string]model.Account),
		emails:   make(map[string]string),
		tokens:   make(map[string]model.RefreshToken),
	}
}

func (m *memoryState) clone() *memoryState {
	c := newMemoryState()
	for k, v := range m.accounts {
		c.accounts[k] = v
	}
	for k, v := range m.emails {
		c.emails[k] = v
	}
	for k, v := range m.tokens {
		c.tokens[k] = cloneToken(v)
	}
	return c
}

func (m *memoryState) GetAccountByEmail(_ context.Context, email string) (*model.Account, error) {
	uuid, ok := m.emails[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	account := m.accounts[uuid]
	return &account, nil
}

func (m *memoryState) GetAccountByUUID(_ context.Context, uuid string) (*model.Account, error) {
	account, ok := m.accounts[uuid]
	if !ok {
		return nil, ErrNotFound
	}
	return &account, nil
}

// LockAccount : блокировка уже взята в MemoryStore.WithinTx
func (m *memoryState) LockAccount(ctx context.Context, uuid string) (*model.Account, error) {
	return m.GetAccountByUUID(ctx, uuid)
}

func (m *memoryState) CreateAccount(_ context.Context, account *model.Account) (*model.Account, error) {
	key := strings.ToLower(account.Email)
	if _, exists := m.emails[key]; exists {
		return nil, ErrDuplicateEmail
	}

	created := *account
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	m.accounts[created.UUID] = created
	m.emails[key] = created.UUID

	result := created
	return &result, nil
}

func (m *memoryState) UpdateAccount(_ context.Context, account *model.Account) error {
	current, ok := m.accounts[account.UUID]
	if !ok {
		return ErrNotFound
	}

	updated := *account
	updated.Email = current.Email
	updated.CreatedAt = current.CreatedAt
	m.accounts[account.UUID] = updated
	return nil
}

func (m *memoryState) CreateRefreshToken(_ context.Context, token *model.RefreshToken) error {
	m.tokens[token.TokenHash] = cloneToken(*token)
	return nil
}

func (m *memoryState) FindActiveRefreshToken(_ context.Context, tokenHash string, now time.Time) (*model.RefreshToken, error) {
	token, ok := m.tokens[tokenHash]
	if !ok || !token.IsActive(now) {
		return nil, ErrNotFound
	}
	found := cloneToken(token)
	return &found, nil
}

func (m *memoryState) RevokeRefreshToken(_ context.Context, tokenHash string, now time.Time) (*model.RefreshToken, error) {
	token, ok := m.tokens[tokenHash]
	if !ok || token.Revoked {
		return nil, ErrNotFound
	}

	revokedAt := now
	token.Revoked = true
	token.RevokedAt = &revokedAt
	m.tokens[tokenHash] = token

	revoked := cloneToken(token)
	return &revoked, nil
}

// WithinTx : вложенная транзакция выполняется в текущей
func (m *memoryState) WithinTx(_ context.Context, fn func(store ports.CredentialStore) error) error {
	return fn(m)
}

func cloneToken(token model.RefreshToken) model.RefreshToken {
	if token.RevokedAt != nil {
		revokedAt := *token.RevokedAt
		token.RevokedAt = &revokedAt
	}
	return token
}
