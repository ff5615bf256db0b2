package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"pizza-store-cli/models"
)

type RegisterRequest struct {
	Login         string `json:"login" validate:"notblank,max=50"`
	Password      string `json:"password" validate:"notblank,max=30"`
	FavoriteItems string `json:"favoriteItems"`
	PhoneNum      string `json:"phoneNum" validate:"notblank,max=20"`
}

type AuthService struct {
	users UserRepository
	log   logrus.FieldLogger
}

func NewAuthService(users UserRepository, log logrus.FieldLogger) *AuthService {
	return &AuthService{users: users, log: log}
}

// ValidateField checks one registration field as it is typed, so the console
// can re-prompt before the whole form is submitted. Text fields are trimmed
// as Register trims them; passwords are checked as typed.
func (s *AuthService) ValidateField(field, value string) error {
	switch field {
	case "login":
		return validateVar(field, strings.TrimSpace(value), ruleLogin)
	case "password":
		return validateVar(field, value, rulePassword)
	case "phoneNum":
		return validateVar(field, strings.TrimSpace(value), rulePhone)
	default:
		return nil
	}
}

// Register creates a customer account.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	req.Login = strings.TrimSpace(req.Login)
	req.FavoriteItems = strings.TrimSpace(req.FavoriteItems)
	req.PhoneNum = strings.TrimSpace(req.PhoneNum)
	if err := validateStruct(req); err != nil {
		return err
	}

	exists, err := s.users.Exists(ctx, req.Login)
	if err != nil {
		return err
	}
	if exists {
		return models.ErrDuplicateLogin
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Login:         req.Login,
		Password:      hash,
		Role:          models.RoleCustomer,
		FavoriteItems: req.FavoriteItems,
		PhoneNum:      req.PhoneNum,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}
	s.log.WithField("login", user.Login).Info("user registered")
	return nil
}

// Login verifies credentials and returns the identity to keep for the session.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, error) {
	login = strings.TrimSpace(login)
	user, err := s.users.FindByLogin(ctx, login)
	if errors.Is(err, models.ErrNotFound) {
		return "", models.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	ok, legacy := verifyPassword(user.Password, password)
	if !ok {
		s.log.WithField("login", login).Warn("failed login")
		return "", models.ErrInvalidCredentials
	}
	if legacy {
		s.upgradePassword(ctx, user.Login, password)
	}
	return user.Login, nil
}

// upgradePassword replaces a plaintext password with its hash. Failure is
// logged only: the user already proved the credential.
func (s *AuthService) upgradePassword(ctx context.Context, login, password string) {
	hash, err := hashPassword(password)
	if err == nil {
		_, err = s.users.Update(ctx, login, map[string]any{"password": hash})
	}
	if err != nil {
		s.log.WithError(err).WithField("login", login).Error("could not re-hash legacy password")
		return
	}
	s.log.WithField("login", login).Info("legacy password re-hashed")
}
