package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pizza-store-cli/database"
	"pizza-store-cli/models"
)

type Items struct {
	gw *database.Gateway
}

func NewItems(gw *database.Gateway) *Items {
	return &Items{gw: gw}
}

func (r *Items) List(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.gw.DB(ctx).Order("itemname").Find(&items).Error; err != nil {
		return nil, database.Classify(err)
	}
	return items, nil
}

func (r *Items) FindByName(ctx context.Context, name string) (*models.Item, error) {
	var item models.Item
	err := r.gw.DB(ctx).Where("itemname = ?", name).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, database.Classify(err)
	}
	return &item, nil
}

func (r *Items) Create(ctx context.Context, item *models.Item) error {
	err := database.Classify(r.gw.DB(ctx).Create(item).Error)
	if database.IsUniqueViolation(err) {
		return models.ErrDuplicateItem
	}
	return err
}

func (r *Items) Update(ctx context.Context, name string, fields map[string]any) (int64, error) {
	res := r.gw.DB(ctx).Model(&models.Item{}).Where("itemname = ?", name).Updates(fields)
	if res.Error != nil {
		return 0, database.Classify(res.Error)
	}
	return res.RowsAffected, nil
}
