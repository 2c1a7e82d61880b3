package service

import (
	"errors"
	"time"

	"github.com/doguscu/barcode-scanner/internal/model"
	"github.com/doguscu/barcode-scanner/pkg/jwt"

	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid name or password")

type AuthService interface {
	Login(name, password string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

type LoginResponse struct {
	Token     string `json:"token"`
	Operator  string `json:"operator"`
	ExpiresAt int64  `json:"expires_at"`
}

type authService struct {
	operator model.Operator
	secret   []byte
	ttl      time.Duration
	logger   *zap.Logger
	now      Clock
}

func NewAuthService(operator model.Operator, secret string, ttl time.Duration, logger *zap.Logger, now Clock) AuthService {
	return &authService{
		operator: operator,
		secret:   []byte(secret),
		ttl:      ttl,
		logger:   logger,
		now:      now,
	}
}

func (s *authService) Login(name, password string) (*LoginResponse, error) {
	if name != s.operator.Name || !s.operator.CheckPassword(password) {
		s.logger.Warn("failed login attempt", zap.String("operator", name))
		return nil, ErrInvalidCredentials
	}

	token, claims, err := jwt.GenerateToken(s.secret, s.operator.Name, s.ttl, s.now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("operator logged in", zap.String("operator", name), zap.String("token_id", claims.ID))
	return &LoginResponse{
		Token:     token,
		Operator:  s.operator.Name,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Claims, error) {
	claims, err := jwt.ValidateToken(s.secret, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Operator != s.operator.Name {
		return nil, jwt.ErrInvalidToken
	}
	return claims, nil
}
