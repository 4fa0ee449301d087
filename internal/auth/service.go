package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginDisabled      = errors.New("login disabled: no admin password configured")
)

// AdminSubject is the token subject issued to the single exporter operator.
const AdminSubject = "admin"

const tokenTTL = 24 * time.Hour

type Service struct {
	jwtSecret    []byte
	passwordHash []byte
	now          func() time.Time
}

// NewService creates an auth service. An empty passwordHash disables login
// but tokens signed with jwtSecret are still accepted.
func NewService(jwtSecret, passwordHash string) *Service {
	return &Service{
		jwtSecret:    []byte(jwtSecret),
		passwordHash: []byte(passwordHash),
		now:          time.Now,
	}
}

type AuthResult struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

func (s *Service) Login(_ context.Context, password string) (*AuthResult, error) {
	if len(s.passwordHash) == 0 {
		return nil, ErrLoginDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	exp := s.now().Add(tokenTTL)
	token, err := s.issueToken(AdminSubject, exp)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: exp.Unix()}, nil
}

func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	subject, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("invalid token subject")
	}

	return subject, nil
}

func (s *Service) issueToken(subject string, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": s.now().Unix(),
		"exp": exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
