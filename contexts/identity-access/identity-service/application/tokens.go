package application

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"clearfund/contexts/identity-access/identity-service/domain/entities"
	domainerrors "clearfund/contexts/identity-access/identity-service/domain/errors"
)

// Claims carries the resolved identity inside a bearer token. The funding
// ledgers trust these fields without hitting the users table again.
type Claims struct {
	UserID    int64  `json:"user_id"`
	Role      string `json:"role"`
	SourceTag string `json:"source_tag,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (m *TokenManager) Issue(user entities.User, now time.Time) (string, error) {
	claims := &Claims{
		UserID:    user.ID,
		Role:      string(user.Role),
		SourceTag: user.SourceTag,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *TokenManager) Verify(token string) (entities.Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return entities.Identity{}, domainerrors.ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return entities.Identity{}, domainerrors.ErrInvalidToken
	}
	return entities.Identity{
		UserID:    claims.UserID,
		Role:      entities.Role(claims.Role),
		SourceTag: claims.SourceTag,
	}, nil
}
