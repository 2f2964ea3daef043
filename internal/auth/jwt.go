package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/shenikar/disaster_incident_system/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims - профиль вызывающего, выданный внешним сервисом учетных записей.
// Subject содержит id пользователя.
type Claims struct {
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken подписывает токен для caller (HS256)
func GenerateToken(secret string, caller models.Caller, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role:  caller.Role,
		Name:  caller.Name,
		Phone: caller.Phone,
		Email: caller.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken проверяет подпись и срок действия и возвращает вызывающего
func ParseToken(secret, tokenStr string) (*models.Caller, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &models.Caller{
		ID:    claims.Subject,
		Role:  claims.Role,
		Name:  claims.Name,
		Phone: claims.Phone,
		Email: claims.Email,
	}, nil
}
