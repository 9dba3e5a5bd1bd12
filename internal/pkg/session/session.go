package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSession = errors.New("invalid session token")
	ErrExpiredSession = errors.New("session expired")
)

// Session is the authenticated view a request carries around: who the user is
// and when the cookie stops being trusted (epoch milliseconds).
type Session struct {
	UserID    string
	Email     string
	Name      string
	ExpiresAt int64
}

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Service signs and verifies the session cookie payload (HS256).
// Expiry is enforced on every read; an expired token yields ErrExpiredSession
// so the caller can clear the cookie.
type Service struct {
	secretKey []byte
	duration  time.Duration
}

func NewService(secretKey string, duration time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		duration:  duration,
	}
}

func (s *Service) Duration() time.Duration {
	return s.duration
}

func (s *Service) Issue(userID, email, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) Verify(tokenString string) (Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, ErrExpiredSession
		}
		return Session{}, ErrInvalidSession
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return Session{}, ErrInvalidSession
	}

	return Session{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		ExpiresAt: claims.ExpiresAt.UnixMilli(),
	}, nil
}
