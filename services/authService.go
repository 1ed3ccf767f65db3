package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/confectionary-api/models"
	"github.com/golang-jwt/jwt/v5"
)

type AuthService struct {
	Users  *UserService
	Secret []byte
	TTL    time.Duration
}

func NewAuthService(users *UserService, secret string, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret), TTL: ttl}
}

func (s *AuthService) SignIn(ctx context.Context, dto models.LoginDTO) (models.AccessToken, error) {
	email, err := s.Users.ValidateUserPassword(ctx, dto)
	if err != nil {
		return models.AccessToken{}, err
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return models.AccessToken{AccessToken: signed}, nil
}

// Validate resolves a bearer token to the user it was issued for.
func (s *AuthService) Validate(ctx context.Context, tokenString string) (*models.User, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	}

	user, err := s.Users.FetchByEmail(ctx, claims.Subject)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
