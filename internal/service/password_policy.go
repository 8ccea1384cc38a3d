package service

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

// bcrypt учитывает только первые 72 байта
const maxPasswordBytes = 72

// PasswordPolicy : требования к новому паролю
type PasswordPolicy struct {
	MinLength int
}

func (p PasswordPolicy) Validate(password string) error {
	minLength := p.MinLength
	if minLength <= 0 {
		minLength = 8
	}

	if len([]rune(password)) < minLength {
		return fmt.Errorf("%w: пароль должен содержать минимум %d символов", ErrWeakPassword, minLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: пароль длиннее %d байт", ErrWeakPassword, maxPasswordBytes)
	}

	var upperCount, lowerCount, digitCount, specialCount int

	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upperCount++
		case unicode.IsLower(c):
			lowerCount++
		case unicode.IsDigit(c):
			digitCount++
		case unicode.IsPunct(c) || unicode.IsSymbol(c):
			specialCount++
		}
	}

	if upperCount == 0 || lowerCount == 0 {
		return fmt.Errorf("%w: пароль должен содержать буквы в разных регистрах", ErrWeakPassword)
	}
	if digitCount < 1 {
		return fmt.Errorf("%w: пароль должен содержать хотя бы одну цифру", ErrWeakPassword)
	}
	if specialCount < 1 {
		return fmt.Errorf("%w: пароль должен содержать хотя бы один специальный символ", ErrWeakPassword)
	}

	return nil
}

// NormalizeEmail : email сравнивается без учета регистра и пробелов по краям
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: пустой email", ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: некорректный email", ErrInvalidInput)
	}
	return nil
}
