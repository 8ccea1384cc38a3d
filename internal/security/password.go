package security

import (
	"auth-service/config"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
	"strings"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"

	argon2SaltLength = 16
	argon2KeyLength  = 32

	// dummyPassword нужен только для выравнивания времени проверки
	dummyPassword = "timing-equalizer-password"
)

var (
	ErrUnsupportedAlgorithm = errors.New("unsupported password hashing algorithm")
	errMalformedDigest      = errors.New("malformed password digest")
)

type argon2Params struct {
	memory      uint32
	time        uint32
	parallelism uint8
	keyLength   uint32
}

// PasswordHasher : bcrypt или argon2id. Дайджест сам описывает свои параметры,
// поэтому старые дайджесты проверяются и после смены алгоритма/стоимости.
type PasswordHasher struct {
	algorithm  string
	bcryptCost int
	argon2     argon2Params
	dummy      string
}

func NewPasswordHasher(cfg config.PasswordConfig) (*PasswordHasher, error) {
	h := &PasswordHasher{
		algorithm:  strings.ToLower(cfg.Algorithm),
		bcryptCost: cfg.BcryptCost,
		argon2: argon2Params{
			memory:      cfg.Argon2Memory,
			time:        cfg.Argon2Time,
			parallelism: cfg.Argon2Parallelism,
			keyLength:   argon2KeyLength,
		},
	}

	switch h.algorithm {
	case AlgorithmBcrypt:
		if h.bcryptCost < bcrypt.MinCost || h.bcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("недопустимая стоимость bcrypt: %d", h.bcryptCost)
		}
	case AlgorithmArgon2id:
		if h.argon2.memory == 0 || h.argon2.time == 0 || h.argon2.parallelism == 0 {
			return nil, errors.New("недопустимые параметры argon2id")
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, cfg.Algorithm)
	}

	dummy, err := h.Hash(dummyPassword)
	if err != nil {
		return nil, err
	}
	h.dummy = dummy

	return h, nil
}

func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if h.algorithm == AlgorithmArgon2id {
		return h.hashArgon2(plaintext)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хэширования пароля: %w", err)
	}
	return string(digest), nil
}

// Verify : никогда не возвращает ошибку. Для битого дайджеста выполняется
// сравнение с фиктивным дайджестом, чтобы время ответа не отличалось от неверного пароля.
func (h *PasswordHasher) Verify(plaintext, digest string) bool {
	switch {
	case isArgon2Digest(digest):
		params, salt, key, err := parseArgon2(digest)
		if err != nil {
			h.equalize(plaintext)
			return false
		}
		computed := argon2.IDKey([]byte(plaintext), salt, params.time, params.memory, params.parallelism, params.keyLength)
		return subtle.ConstantTimeCompare(computed, key) == 1
	case isBcryptDigest(digest):
		if _, err := bcrypt.Cost([]byte(digest)); err != nil {
			h.equalize(plaintext)
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
	default:
		h.equalize(plaintext)
		return false
	}
}

// equalize : сравнение с фиктивным хэшем, отказ занимает столько же времени, сколько проверка
func (h *PasswordHasher) equalize(plaintext string) {
	if h.dummy == "" {
		return
	}
	_ = h.Verify(plaintext, h.dummy)
}

// NeedsRehash : дайджест другого алгоритма или с более слабыми параметрами
func (h *PasswordHasher) NeedsRehash(digest string) bool {
	switch h.algorithm {
	case AlgorithmArgon2id:
		if !isArgon2Digest(digest) {
			return isBcryptDigest(digest)
		}
		params, _, _, err := parseArgon2(digest)
		if err != nil {
			return false
		}
		return params.memory < h.argon2.memory ||
			params.time < h.argon2.time ||
			params.parallelism < h.argon2.parallelism ||
			params.keyLength != h.argon2.keyLength
	default:
		if !isBcryptDigest(digest) {
			return isArgon2Digest(digest)
		}
		cost, err := bcrypt.Cost([]byte(digest))
		if err != nil {
			return false
		}
		return cost < h.bcryptCost
	}
}

func (h *PasswordHasher) hashArgon2(plaintext string) (string, error) {
	salt := make([]byte, argon2SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("ошибка генерации соли: %w", err)
	}

	p := h.argon2
	key := argon2.IDKey([]byte(plaintext), salt, p.time, p.memory, p.parallelism, p.keyLength)

	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		AlgorithmArgon2id,
		argon2.Version,
		p.memory,
		p.time,
		p.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func isArgon2Digest(digest string) bool {
	return strings.HasPrefix(digest, "$"+AlgorithmArgon2id+"$")
}

func isBcryptDigest(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") ||
		strings.HasPrefix(digest, "$2b$") ||
		strings.HasPrefix(digest, "$2y$")
}

// parseArgon2 : $argon2id$v=19$m=65536,t=1,p=2$<salt>$<hash>
func parseArgon2(digest string) (argon2Params, []byte, []byte, error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 {
		return argon2Params{}, nil, nil, errMalformedDigest
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return argon2Params{}, nil, nil, errMalformedDigest
	}

	var p argon2Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.parallelism); err != nil {
		return argon2Params{}, nil, nil, errMalformedDigest
	}
	if p.memory == 0 || p.time == 0 || p.parallelism == 0 {
		return argon2Params{}, nil, nil, errMalformedDigest
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return argon2Params{}, nil, nil, errMalformedDigest
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return argon2Params{}, nil, nil, errMalformedDigest
	}
	p.keyLength = uint32(len(key))

	return p, salt, key, nil
}
