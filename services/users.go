package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"pizza-store-cli/middleware"
	"pizza-store-cli/models"
)

// UserChanges is a manager's edit of another account; blank keeps the current value.
type UserChanges struct {
	Password      string `json:"password" validate:"omitempty,max=30"`
	Role          string `json:"role" validate:"omitempty,oneof=customer driver manager"`
	FavoriteItems string `json:"favoriteItems"`
	PhoneNum      string `json:"phoneNum" validate:"omitempty,max=20"`
}

type UserAdminService struct {
	users UserRepository
	log   logrus.FieldLogger
}

func NewUserAdminService(users UserRepository, log logrus.FieldLogger) *UserAdminService {
	return &UserAdminService{users: users, log: log}
}

// ForEdit returns the target account once the caller is allowed to manage users.
func (s *UserAdminService) ForEdit(ctx context.Context, identity, target string) (*models.User, error) {
	if _, err := middleware.Authorize(ctx, s.users, identity, middleware.CapUserUpdate); err != nil {
		return nil, err
	}
	return s.users.FindByLogin(ctx, strings.TrimSpace(target))
}

func (s *UserAdminService) Update(ctx context.Context, identity, target string, ch UserChanges) error {
	if _, err := middleware.Authorize(ctx, s.users, identity, middleware.CapUserUpdate); err != nil {
		return err
	}
	target = strings.TrimSpace(target)
	current, err := s.users.FindByLogin(ctx, target)
	if err != nil {
		return err
	}

	if blank(ch.Password) {
		ch.Password = ""
	}
	ch.Role = strings.ToLower(strings.TrimSpace(ch.Role))
	if err := validateStruct(ch); err != nil {
		return err
	}

	changes, err := userChanges(current, ch.Password, models.UserRole(ch.Role), ch.FavoriteItems, ch.PhoneNum)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		return models.ErrNoOp
	}
	if _, err := s.users.Update(ctx, target, changes); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"manager": identity,
		"login":   target,
		"fields":  len(changes),
	}).Info("user updated")
	return nil
}
