package services

//go:generate mockgen -source=ports.go -destination=mocks/ports_mock.go -package=mocks

import (
	"context"

	"pizza-store-cli/database"
	"pizza-store-cli/models"
)

type UserRepository interface {
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	RoleOf(ctx context.Context, login string) (models.UserRole, error)
	Exists(ctx context.Context, login string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, login string, fields map[string]any) (int64, error)
}

type ItemRepository interface {
	List(ctx context.Context) ([]models.Item, error)
	FindByName(ctx context.Context, name string) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, name string, fields map[string]any) (int64, error)
}

type StoreRepository interface {
	List(ctx context.Context) ([]models.Store, error)
}

type OrderRepository interface {
	FindByID(ctx context.Context, id int) (*models.FoodOrder, error)
	UpdateStatus(ctx context.Context, id int, status models.OrderStatus) (int64, error)
	History(ctx context.Context, login string, limit int) (*database.Rows, error)
	Lines(ctx context.Context, id int) ([]models.ItemInOrder, error)
}
