package auth

import (
	"errors"
	"net/http"
	"sync"

	"github.com/sebuszqo/HomeBudget/internal/user"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrTwoFactorRequired   = errors.New("two-factor code required")
	ErrInvalidTwoFactor    = errors.New("invalid two-factor code")
	ErrTwoFactorNotPending = errors.New("no pending two-factor registration")
	ErrInternalError       = errors.New("internal server error")
)

type Service interface {
	Login(email, password, twoFactorCode string) (string, error)
	BeginTwoFactorRegistration(userID string) (string, error)
	ConfirmTwoFactorRegistration(userID, code string) error
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	userService   user.Service
	jwtManager    JWTManagerInterface
	authenticator Authenticator

	// Secrets generated but not yet confirmed with a valid code. 2FA only
	// becomes active once the user proves the authenticator works.
	pendingMu      sync.Mutex
	pendingSecrets map[string]string
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface, authenticator Authenticator) Service {
	return &service{
		userService:    userService,
		jwtManager:     jwtManager,
		authenticator:  authenticator,
		pendingSecrets: make(map[string]string),
	}
}

func (s *service) Login(email, password, twoFactorCode string) (string, error) {
	u, err := s.userService.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", ErrInternalError
	}
	if err := s.userService.VerifyPassword(u, password); err != nil {
		return "", ErrInvalidCredentials
	}

	if u.TwoFactorSecret != nil {
		if twoFactorCode == "" {
			return "", ErrTwoFactorRequired
		}
		if !s.authenticator.VerifyCode(*u.TwoFactorSecret, twoFactorCode) {
			return "", ErrInvalidTwoFactor
		}
	}

	token, err := s.jwtManager.GenerateAccessJWT(u.ID, 0)
	if err != nil {
		return "", ErrInternalError
	}
	return token, nil
}

func (s *service) BeginTwoFactorRegistration(userID string) (string, error) {
	u, err := s.userService.GetUserByID(userID)
	if err != nil {
		return "", ErrInternalError
	}
	otpURI, secret, err := s.authenticator.GenerateSecret(u.Email)
	if err != nil {
		return "", err
	}
	s.pendingMu.Lock()
	s.pendingSecrets[userID] = secret
	s.pendingMu.Unlock()
	return otpURI, nil
}

func (s *service) ConfirmTwoFactorRegistration(userID, code string) error {
	s.pendingMu.Lock()
	secret, ok := s.pendingSecrets[userID]
	s.pendingMu.Unlock()
	if !ok {
		return ErrTwoFactorNotPending
	}
	if !s.authenticator.VerifyCode(secret, code) {
		return ErrInvalidTwoFactor
	}
	if err := s.userService.SetTwoFactorSecret(userID, secret); err != nil {
		return ErrInternalError
	}
	s.pendingMu.Lock()
	delete(s.pendingSecrets, userID)
	s.pendingMu.Unlock()
	return nil
}
