package repository

import (
	"context"

	"pizza-store-cli/database"
	"pizza-store-cli/models"
)

type Stores struct {
	gw *database.Gateway
}

func NewStores(gw *database.Gateway) *Stores {
	return &Stores{gw: gw}
}

func (r *Stores) List(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	if err := r.gw.DB(ctx).Order("storeid").Find(&stores).Error; err != nil {
		return nil, database.Classify(err)
	}
	return stores, nil
}
