package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quizgem/config"
)

const sessionTokenTTL = time.Hour

// SessionClaims is the signed payload asserting account identity.
type SessionClaims struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

type TokenService interface {
	Issue(subject, username, name string) (string, error)
	Parse(token string) (*SessionClaims, error)
}

type tokenService struct {
	secret []byte
}

func NewTokenService(cfg *config.Config) TokenService {
	return &tokenService{secret: []byte(cfg.Auth.JWTSecret)}
}

func (s *tokenService) Issue(subject, username, name string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Username: username,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *tokenService) Parse(token string) (*SessionClaims, error) {
	var claims SessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid session token", ErrUnauthenticated)
	}
	return &claims, nil
}
