package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rcooper/taskflow-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	GenerateTokenFn        func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn        func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateRefreshTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements the JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	return "access-token-" + userID.String(), nil
}

// ValidateToken implements the JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return nil, auth.ErrInvalidToken
}

// GenerateRefreshToken implements the JWTService interface
func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, userID)
	}
	return "refresh-token-" + userID.String(), nil
}

// ValidateRefreshToken implements the JWTService interface
func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	return nil, auth.ErrInvalidRefreshToken
}

// ValidClaimsFor builds a Claims value that a real token for the given user
// would carry. Test helper for wiring ValidateTokenFn.
func ValidClaimsFor(userID uuid.UUID, tokenType string) *auth.Claims {
	now := time.Now().UTC()
	return &auth.Claims{
		UserID:    userID,
		TokenType: tokenType,
		Subject:   userID.String(),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
		ID:        uuid.NewString(),
	}
}

// MockPasswordHasher implements auth.PasswordHasher for testing. The default
// "hash" is reversible so tests can assert what was stored.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	HashError error
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashError != nil {
		return "", m.HashError
	}
	return "hashed:" + password, nil
}

// MockPasswordVerifier implements auth.PasswordVerifier for testing,
// matching the MockPasswordHasher's reversible scheme.
type MockPasswordVerifier struct {
	CompareFn func(hashedPassword, password string) error
}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements the PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword != "hashed:"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}
