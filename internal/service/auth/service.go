package auth

import (
	"github.com/hr-insights/etl-backend-go/internal/config"
	"github.com/hr-insights/etl-backend-go/internal/domain/auth"
	"github.com/hr-insights/etl-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

type AuthService interface {
	Login(username, password string) (TokenResponse, error)
}

// authServiceImpl checks the single configured API credential and issues
// access tokens. The API has no user table; the silver/gold schema is the
// only data this service guards.
type authServiceImpl struct {
	username     string
	passwordHash string
	jwtService   jwt.Service
}

func NewAuthService(cfg config.APIConfig, jwtService jwt.Service) AuthService {
	return &authServiceImpl{
		username:     cfg.Username,
		passwordHash: cfg.PasswordHash,
		jwtService:   jwtService,
	}
}

func (s *authServiceImpl) Login(username, password string) (TokenResponse, error) {
	if username != s.username {
		return TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(username)
	if err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	}, nil
}
