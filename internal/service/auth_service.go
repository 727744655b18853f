package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rating_of_titles/internal/models"
	"rating_of_titles/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTLDays = 365

// AuthService handles registration, login and token logic.
type AuthService struct {
	users      repository.Users
	signingKey []byte
	tokenTTL   time.Duration
}

func NewAuthService(users repository.Users, cfg AuthConfig) *AuthService {
	ttlDays := cfg.TokenTTLDays
	if ttlDays <= 0 {
		ttlDays = defaultTokenTTLDays
	}
	return &AuthService{
		users:      users,
		signingKey: []byte(cfg.SigningKey),
		tokenTTL:   time.Duration(ttlDays) * 24 * time.Hour,
	}
}

var _ Authorization = (*AuthService)(nil)

// SignUp hashes the password, creates the user (with its optional role)
// and immediately mints a token for the new identity.
func (s *AuthService) SignUp(ctx context.Context, in SignUpParams) (string, error) {
	hash, err := hashPassword(in.Password)
	if err != nil {
		return "", fmt.Errorf("invalid password: %w", err)
	}
	id, err := s.users.Create(ctx, in.Username, in.Email, hash, in.Role)
	if err != nil {
		return "", err
	}
	return s.issueToken(id)
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// GenerateToken validates credentials and returns a signed JWT.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", models.ErrInvalidPassword
	}

	return s.issueToken(u.ID)
}

// ParseToken parses a JWT and returns the embedded user ID.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, models.ErrInvalidToken
	}

	return claims.UserID, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash; fails closed on malformed hashes
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT carrying the user identity claim
func (s *AuthService) issueToken(userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}
