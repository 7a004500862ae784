package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"noteshare/internal/models"
	"noteshare/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// defaultTokenTTL applies when no TTL is configured.
const defaultTokenTTL = 30 * time.Minute

// Domain errors for auth and item flows.
var (
	ErrDuplicateUser      = errors.New("username already registered")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("not found")
)

// AuthService handles registration, credential exchange and token lifecycle.
type AuthService struct {
	authRepo   repository.Authorization
	signingKey []byte
	tokenTTL   time.Duration
	revoked    *RevocationSet
}

func NewAuthService(repo repository.Authorization, signingKey string, tokenTTL time.Duration, revoked *RevocationSet) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		authRepo:   repo,
		signingKey: []byte(signingKey),
		tokenTTL:   tokenTTL,
		revoked:    revoked,
	}
}

// SignUp hashes the password and creates a new user.
func (s *AuthService) SignUp(username, password string) (int, error) {
	existing, err := s.authRepo.GetByUsername(username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrDuplicateUser
	}

	hash, err := hashPassword(password)
	if err != nil {
		return 0, err
	}
	return s.authRepo.Create(username, hash)
}

// GenerateToken validates credentials and returns a signed JWT whose subject
// is the username.
func (s *AuthService) GenerateToken(username, password string) (string, error) {
	u, err := s.authRepo.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(u.Username)
}

// ParseToken verifies signature, expiry and revocation status, and returns
// the subject username. Every failure collapses to ErrInvalidToken.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	if s.revoked.Contains(accessToken) {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// RevokeToken adds the token to the revocation set. Idempotent; the
// signature stays intact, only ParseToken consults the set.
func (s *AuthService) RevokeToken(accessToken string) {
	s.revoked.Add(accessToken)
}

// Authenticate resolves a token to its user record. A valid token whose user
// no longer exists yields ErrNotFound rather than a crash.
func (s *AuthService) Authenticate(accessToken string) (*models.User, error) {
	username, err := s.ParseToken(accessToken)
	if err != nil {
		return nil, err
	}
	u, err := s.authRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: password is empty", ErrInvalidPassword)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a subject with absolute expiry now+ttl
func (s *AuthService) issueToken(subject string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	})
	return token.SignedString(s.signingKey)
}
