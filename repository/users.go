package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pizza-store-cli/database"
	"pizza-store-cli/models"
)

type Users struct {
	gw *database.Gateway
}

func NewUsers(gw *database.Gateway) *Users {
	return &Users{gw: gw}
}

func (r *Users) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	err := r.gw.DB(ctx).Where("login = ?", login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, database.Classify(err)
	}
	return &user, nil
}

// RoleOf reads the role straight from storage; it is never cached.
func (r *Users) RoleOf(ctx context.Context, login string) (models.UserRole, error) {
	rows, err := r.gw.Query(ctx, "SELECT role FROM users WHERE login = ?", login)
	if err != nil {
		return "", err
	}
	if rows.Len() == 0 {
		return "", models.ErrNotFound
	}
	role, _ := models.ParseRole(rows.Records[0][0])
	return role, nil
}

func (r *Users) Exists(ctx context.Context, login string) (bool, error) {
	n, err := r.gw.ScalarCount(ctx, "SELECT COUNT(*) FROM users WHERE login = ?", login)
	return n > 0, err
}

func (r *Users) Create(ctx context.Context, user *models.User) error {
	err := database.Classify(r.gw.DB(ctx).Create(user).Error)
	if database.IsUniqueViolation(err) {
		return models.ErrDuplicateLogin
	}
	return err
}

// Update writes only the given columns and returns the affected row count.
func (r *Users) Update(ctx context.Context, login string, fields map[string]any) (int64, error) {
	res := r.gw.DB(ctx).Model(&models.User{}).Where("login = ?", login).Updates(fields)
	if res.Error != nil {
		return 0, database.Classify(res.Error)
	}
	return res.RowsAffected, nil
}
