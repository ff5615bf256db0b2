package services

import (
	"context"

	"pizza-store-cli/models"
)

type StoreService struct {
	stores StoreRepository
}

func NewStoreService(stores StoreRepository) *StoreService {
	return &StoreService{stores: stores}
}

func (s *StoreService) List(ctx context.Context) ([]models.Store, error) {
	stores, err := s.stores.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, models.ErrNoRecords
	}
	return stores, nil
}
