package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"pizza-store-cli/middleware"
	"pizza-store-cli/models"
)

// ProfileChanges holds typed input; blank fields keep their current value.
type ProfileChanges struct {
	Password      string `json:"password" validate:"omitempty,max=30"`
	PhoneNum      string `json:"phoneNum" validate:"omitempty,max=20"`
	FavoriteItems string `json:"favoriteItems"`
}

type ProfileService struct {
	users UserRepository
	log   logrus.FieldLogger
}

func NewProfileService(users UserRepository, log logrus.FieldLogger) *ProfileService {
	return &ProfileService{users: users, log: log}
}

func (s *ProfileService) View(ctx context.Context, identity string) (*models.User, error) {
	return s.users.FindByLogin(ctx, identity)
}

// ForEdit returns the current profile once the caller may edit it.
func (s *ProfileService) ForEdit(ctx context.Context, identity string) (*models.User, error) {
	if _, err := middleware.Authorize(ctx, s.users, identity, middleware.CapProfileUpdate); err != nil {
		return nil, err
	}
	return s.users.FindByLogin(ctx, identity)
}

// Update applies the non-blank fields of ch to the caller's own profile.
func (s *ProfileService) Update(ctx context.Context, identity string, ch ProfileChanges) error {
	if _, err := middleware.Authorize(ctx, s.users, identity, middleware.CapProfileUpdate); err != nil {
		return err
	}
	current, err := s.users.FindByLogin(ctx, identity)
	if err != nil {
		return err
	}

	if blank(ch.Password) {
		ch.Password = ""
	}
	if err := validateStruct(ch); err != nil {
		return err
	}

	changes, err := userChanges(current, ch.Password, "", ch.FavoriteItems, ch.PhoneNum)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		return models.ErrNoOp
	}
	if _, err := s.users.Update(ctx, identity, changes); err != nil {
		return err
	}
	s.log.WithField("login", identity).WithField("fields", len(changes)).Info("profile updated")
	return nil
}

// userChanges builds the column set shared by the profile and user mutators.
func userChanges(current *models.User, password string, role models.UserRole, favoriteItems, phoneNum string) (changeSet, error) {
	changes := changeSet{}
	if password != "" {
		if same, _ := verifyPassword(current.Password, password); !same {
			hash, err := hashPassword(password)
			if err != nil {
				return nil, err
			}
			changes["password"] = hash
		}
	}
	if role != "" && role != current.Role {
		changes["role"] = string(role)
	}
	changes.text("favoriteitems", favoriteItems, current.FavoriteItems)
	changes.text("phonenum", phoneNum, current.PhoneNum)
	return changes, nil
}
