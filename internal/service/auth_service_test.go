package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"entregas/internal/config"
	"entregas/internal/domain"
	"entregas/internal/service"
	"entregas/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-key-for-unit-tests",
		AccessTokenExpiry: 15 * time.Minute,
		Issuer:            "entregas-test",
	}
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

func TestAuthService_Login_BcryptPassword(t *testing.T) {
	credRepo := new(mocks.MockCredentialRepo)
	svc := service.NewAuthService(credRepo, testJWTConfig())

	credRepo.On("GetByUsername", mock.Anything, "matheus").Return(&domain.Credential{
		Username: "matheus", Password: hashPassword("gas123"), Tenant: "MatheusGas",
	}, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{Username: " matheus ", Password: "gas123"})
	require.NoError(t, err)
	assert.Equal(t, "MatheusGas", result.Tenant)
	assert.NotEmpty(t, result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	credRepo.AssertExpectations(t)
}

func TestAuthService_Login_PlainPassword(t *testing.T) {
	credRepo := new(mocks.MockCredentialRepo)
	svc := service.NewAuthService(credRepo, testJWTConfig())

	credRepo.On("GetByUsername", mock.Anything, "ana").Return(&domain.Credential{
		Username: "ana", Password: "segredo", Tenant: "Acme",
	}, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{Username: "ana", Password: "segredo"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", result.Tenant)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	credRepo := new(mocks.MockCredentialRepo)
	svc := service.NewAuthService(credRepo, testJWTConfig())

	credRepo.On("GetByUsername", mock.Anything, "matheus").Return(&domain.Credential{
		Username: "matheus", Password: hashPassword("gas123"), Tenant: "MatheusGas",
	}, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{Username: "matheus", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, result)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	credRepo := new(mocks.MockCredentialRepo)
	svc := service.NewAuthService(credRepo, testJWTConfig())

	credRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{Username: "ghost", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	credRepo := new(mocks.MockCredentialRepo)
	svc := service.NewAuthService(credRepo, testJWTConfig())

	_, err := svc.Login(context.Background(), service.LoginInput{Username: "matheus"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	credRepo.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
}

func TestAuthService_Login_StoreError(t *testing.T) {
	credRepo := new(mocks.MockCredentialRepo)
	svc := service.NewAuthService(credRepo, testJWTConfig())

	credRepo.On("GetByUsername", mock.Anything, "matheus").Return(nil, errors.New("db down"))

	_, err := svc.Login(context.Background(), service.LoginInput{Username: "matheus", Password: "gas123"})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_RoundTrip(t *testing.T) {
	credRepo := new(mocks.MockCredentialRepo)
	svc := service.NewAuthService(credRepo, testJWTConfig())

	credRepo.On("GetByUsername", mock.Anything, "ana").Return(&domain.Credential{
		Username: "ana", Password: "segredo", Tenant: "Acme",
	}, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{Username: "ana", Password: "segredo"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "Acme", claims.Tenant)
	assert.Equal(t, "entregas-test", claims.Issuer)
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	svc := service.NewAuthService(new(mocks.MockCredentialRepo), testJWTConfig())

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	other := testJWTConfig()
	other.Secret = "another-secret"
	credRepo := new(mocks.MockCredentialRepo)
	credRepo.On("GetByUsername", mock.Anything, "ana").Return(&domain.Credential{Username: "ana", Password: "p", Tenant: "Acme"}, nil)
	issuer := service.NewAuthService(credRepo, other)
	svc := service.NewAuthService(new(mocks.MockCredentialRepo), testJWTConfig())

	result, err := issuer.Login(context.Background(), service.LoginInput{Username: "ana", Password: "p"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(result.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	svc := service.NewAuthService(new(mocks.MockCredentialRepo), cfg)

	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		Tenant: "Acme",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_MissingTenant(t *testing.T) {
	cfg := testJWTConfig()
	svc := service.NewAuthService(new(mocks.MockCredentialRepo), cfg)

	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
