package nonce

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidNonce = errors.New("invalid nonce")
	ErrExpiredNonce = errors.New("nonce expired")
	ErrEmptySecret  = errors.New("nonce secret is empty")
)

// Claims полезная нагрузка токена: действие, для которого он выдан
type Claims struct {
	Action string `json:"act"`
	jwt.RegisteredClaims
}

// Manager выдаёт и проверяет короткоживущие HS256 токены для форм
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL время жизни токена
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue выдаёт токен для action
func (m *Manager) Issue(action string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		Action: action,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign nonce: %w", err)
	}
	return token, expiresAt, nil
}

// Verify проверяет подпись, срок действия и действие токена
func (m *Manager) Verify(token, action string) error {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return ErrExpiredNonce
		}
		return fmt.Errorf("%w: %v", ErrInvalidNonce, err)
	}

	if claims.Action != action {
		return fmt.Errorf("%w: action mismatch", ErrInvalidNonce)
	}
	return nil
}
