package models

import (
	"strings"

	"gorm.io/gorm"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleDriver   UserRole = "driver"
	RoleManager  UserRole = "manager"
)

// ParseRole normalizes a stored or typed role. The legacy schema stores roles
// in fixed-width columns, so padding and case are ignored.
func ParseRole(s string) (UserRole, bool) {
	switch r := UserRole(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleCustomer, RoleDriver, RoleManager:
		return r, true
	default:
		return r, false
	}
}

type User struct {
	Login         string   `json:"login" gorm:"column:login;primaryKey"`
	Password      string   `json:"-" gorm:"column:password;not null"`
	Role          UserRole `json:"role" gorm:"column:role;not null"`
	FavoriteItems string   `json:"favoriteItems" gorm:"column:favoriteitems"`
	PhoneNum      string   `json:"phoneNum" gorm:"column:phonenum"`
}

func (User) TableName() string { return "users" }

// AfterFind strips the padding fixed-width CHAR columns come back with.
func (u *User) AfterFind(*gorm.DB) error {
	u.Login = strings.TrimRight(u.Login, " ")
	u.Role, _ = ParseRole(string(u.Role))
	u.FavoriteItems = strings.TrimRight(u.FavoriteItems, " ")
	u.PhoneNum = strings.TrimRight(u.PhoneNum, " ")
	return nil
}
