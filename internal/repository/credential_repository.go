package repository

import (
	"auth-service/config"
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"auth-service/internal/util"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"time"
)

// код ошибки postgres unique_violation
const uniqueViolation = "23505"

const accountColumns = `uuid, email, password_hash, first_name, last_name, phone, active, verified, two_factor_enabled, totp_secret, created_at`

const refreshTokenColumns = `uuid, account_uuid, token_hash, expire_at, revoked, created_at, revoked_at`

// CredentialRepository : учетные записи и refresh-токены в Postgres.
// Внутри WithinTx все запросы идут через одну транзакцию.
type CredentialRepository struct {
	database *config.Database
	exec     sqlx.ExtContext
	inTx     bool
}

func NewCredentialRepository(database *config.Database) *CredentialRepository {
	return &CredentialRepository{database: database, exec: database.DB}
}

type accountRow struct {
	UUID             string    `db:"uuid"`
	Email            string    `db:"email"`
	PasswordHash     string    `db:"password_hash"`
	FirstName        string    `db:"first_name"`
	LastName         string    `db:"last_name"`
	Phone            string    `db:"phone"`
	Active           bool      `db:"active"`
	Verified         bool      `db:"verified"`
	TwoFactorEnabled bool      `db:"two_factor_enabled"`
	TotpSecret       *string   `db:"totp_secret"`
	CreatedAt        time.Time `db:"created_at"`
}

func (r accountRow) toModel() (*model.Account, error) {
	twoFactor, err := model.TwoFactorFromColumns(r.TwoFactorEnabled, r.TotpSecret)
	if err != nil {
		return nil, fmt.Errorf("учетная запись %s: %w", r.UUID, err)
	}

	return &model.Account{
		UUID:         r.UUID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Phone:        r.Phone,
		Active:       r.Active,
		Verified:     r.Verified,
		TwoFactor:    twoFactor,
		CreatedAt:    r.CreatedAt,
	}, nil
}

// GetAccountByEmail : ищет учетную запись по email (без учета регистра)
func (r *CredentialRepository) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE lower(email) = lower($1)`
	return r.getAccount(ctx, query, email)
}

// GetAccountByUUID : ищет учетную запись по UUID
func (r *CredentialRepository) GetAccountByUUID(ctx context.Context, uuid string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE uuid = $1`
	return r.getAccount(ctx, query, uuid)
}

// LockAccount : SELECT ... FOR UPDATE, конкурентные изменения той же записи ждут конца транзакции
func (r *CredentialRepository) LockAccount(ctx context.Context, uuid string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE uuid = $1 FOR UPDATE`
	return r.getAccount(ctx, query, uuid)
}

func (r *CredentialRepository) getAccount(ctx context.Context, query string, arg string) (*model.Account, error) {
	var row accountRow
	err := sqlx.GetContext(ctx, r.exec, &row, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, util.LogError("[CredentialRepo] не удалось получить учетную запись", err)
	}
	return row.toModel()
}

// CreateAccount : сохраняет новую учетную запись
func (r *CredentialRepository) CreateAccount(ctx context.Context, account *model.Account) (*model.Account, error) {
	query := `
	INSERT INTO accounts (uuid, email, password_hash, first_name, last_name, phone, active, verified, two_factor_enabled, totp_secret)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at
	`

	enabled, secret := account.TwoFactor.Columns()

	created := *account
	err := r.exec.QueryRowxContext(ctx, query,
		account.UUID,
		account.Email,
		account.PasswordHash,
		account.FirstName,
		account.LastName,
		account.Phone,
		account.Active,
		account.Verified,
		enabled,
		secret,
	).Scan(&created.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, util.LogError("[CredentialRepo] ошибка вставки учетной записи в БД", err)
	}

	return &created, nil
}

// UpdateAccount : перезаписывает изменяемые поля учетной записи
func (r *CredentialRepository) UpdateAccount(ctx context.Context, account *model.Account) error {
	query := `
		UPDATE accounts
		SET password_hash = $2, first_name = $3, last_name = $4, phone = $5,
		    active = $6, verified = $7, two_factor_enabled = $8, totp_secret = $9
		WHERE uuid = $1
	`

	enabled, secret := account.TwoFactor.Columns()

	result, err := r.exec.ExecContext(ctx, query,
		account.UUID,
		account.PasswordHash,
		account.FirstName,
		account.LastName,
		account.Phone,
		account.Active,
		account.Verified,
		enabled,
		secret,
	)
	if err != nil {
		return util.LogError("[CredentialRepo] не удалось обновить учетную запись", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[CredentialRepo] не удалось проверить, обновлена ли учетная запись", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// CreateRefreshToken : сохраняет запись refresh-токена (только хэш значения)
func (r *CredentialRepository) CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (uuid, account_uuid, token_hash, expire_at, revoked, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.exec.ExecContext(ctx, query,
		token.UUID,
		token.AccountUUID,
		token.TokenHash,
		token.ExpireAt,
		token.Revoked,
		token.CreatedAt,
	)
	if err != nil {
		return util.LogError("[CredentialRepo] ошибка вставки refresh токена в БД", err)
	}

	return nil
}

// FindActiveRefreshToken : неотозванный и неистекший токен по хэшу
func (r *CredentialRepository) FindActiveRefreshToken(ctx context.Context, tokenHash string, now time.Time) (*model.RefreshToken, error) {
	query := `SELECT ` + refreshTokenColumns + ` FROM refresh_tokens WHERE token_hash = $1 AND revoked = FALSE AND expire_at > $2`

	var token model.RefreshToken
	err := sqlx.GetContext(ctx, r.exec, &token, query, tokenHash, now)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, util.LogError("[CredentialRepo] ошибка поиска refresh токена", err)
	}

	return &token, nil
}

// RevokeRefreshToken : условный UPDATE, из двух конкурентных вызовов запись вернет только один
func (r *CredentialRepository) RevokeRefreshToken(ctx context.Context, tokenHash string, now time.Time) (*model.RefreshToken, error) {
	query := `
		UPDATE refresh_tokens
		SET revoked = TRUE, revoked_at = $2
		WHERE token_hash = $1 AND revoked = FALSE
		RETURNING ` + refreshTokenColumns

	var token model.RefreshToken
	err := sqlx.GetContext(ctx, r.exec, &token, query, tokenHash, now)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, util.LogError("[CredentialRepo] не удалось отозвать refresh токен", err)
	}

	return &token, nil
}

// WithinTx : fn получает хранилище, привязанное к транзакции
func (r *CredentialRepository) WithinTx(ctx context.Context, fn func(store ports.CredentialStore) error) error {
	if r.inTx {
		return fn(r)
	}

	tx, err := r.database.BeginTxx(ctx, nil)
	if err != nil {
		return util.LogError("[CredentialRepo] не удалось начать транзакцию", err)
	}

	txRepo := &CredentialRepository{database: r.database, exec: tx, inTx: true}
	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			util.LogError("[CredentialRepo] ошибка отката транзакции", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return util.LogError("[CredentialRepo] не удалось зафиксировать транзакцию", err)
	}

	return nil
}
