package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bpofinance/bpofinance/internal/domain"
)

const tokenLifetime = 3600 // seconds

// AuthService handles authentication for the back-office API. A single
// operator API key (stored as a bcrypt hash in configuration) can be
// exchanged for a short-lived JWT.
type AuthService struct {
	apiKeyHash []byte
	jwtSecret  []byte
}

// NewAuthService creates a new auth service
func NewAuthService(apiKeyHash, jwtSecret string) *AuthService {
	return &AuthService{
		apiKeyHash: []byte(apiKeyHash),
		jwtSecret:  []byte(jwtSecret),
	}
}

// ValidateAPIKey checks an API key against the configured bcrypt hash
func (s *AuthService) ValidateAPIKey(apiKey string) error {
	if err := bcrypt.CompareHashAndPassword(s.apiKeyHash, []byte(apiKey)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// GenerateToken issues a JWT for an authenticated operator
func (s *AuthService) GenerateToken() (*domain.TokenResponse, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "operator",
		"exp": now.Add(tokenLifetime * time.Second).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &domain.TokenResponse{
		AccessToken: signedToken,
		TokenType:   "Bearer",
		ExpiresIn:   tokenLifetime,
	}, nil
}

// ValidateToken validates a JWT issued by GenerateToken
func (s *AuthService) ValidateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCredentials
		}
		return s.jwtSecret, nil
	})

	if err != nil || !token.Valid {
		return ErrInvalidCredentials
	}

	return nil
}

// HashAPIKey creates a bcrypt hash of an API key for configuration
func HashAPIKey(apiKey string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
