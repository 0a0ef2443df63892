// Package password реализует одностороннее хеширование и проверку паролей.
//
// GetHash создаёт bcrypt-хеш для хранения в базе, Check сравнивает хеш
// с введённым паролем. Пустой пароль превращается в «непригодный» хеш,
// который никогда не проходит проверку.
package password

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// UnusablePrefix отмечает хеш, с которым вход по паролю невозможен.
const UnusablePrefix = "!"

// MaxLength ограничение bcrypt на длину пароля в байтах.
const MaxLength = 72

// ErrTooLong возвращается, если пароль длиннее MaxLength байт.
var ErrTooLong = errors.New("password is too long")

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хеш.
// Для пустого пароля возвращается непригодный хеш.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	if password == "" {
		return Unusable()
	}
	if len(password) > MaxLength {
		return "", fmt.Errorf("%s: %w", op, ErrTooLong)
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// Unusable возвращает случайный хеш с префиксом UnusablePrefix.
func Unusable() (string, error) {
	const op = "password.Unusable"
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return UnusablePrefix + hex.EncodeToString(buf), nil
}

// IsUsable сообщает, можно ли войти с этим хешем.
func IsUsable(hash string) bool {
	return hash != "" && !strings.HasPrefix(hash, UnusablePrefix)
}

// CompareHash сравнивает bcrypt‑хеш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хешу, иначе — ошибку.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if !IsUsable(originalHash) {
		return fmt.Errorf("%s: %w", op, bcrypt.ErrMismatchedHashAndPassword)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Check — булева обёртка над CompareHash.
func Check(originalHash, externalPassword string) bool {
	return CompareHash(originalHash, externalPassword) == nil
}

// SimulateCheck выполняет сравнение с фиктивным хешем, чтобы время ответа
// для несуществующего пользователя совпадало со временем проверки пароля.
func SimulateCheck(externalPassword string) {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(externalPassword))
}
