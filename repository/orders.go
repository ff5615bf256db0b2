package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pizza-store-cli/database"
	"pizza-store-cli/models"
)

type Orders struct {
	gw *database.Gateway
}

func NewOrders(gw *database.Gateway) *Orders {
	return &Orders{gw: gw}
}

func (r *Orders) FindByID(ctx context.Context, id int) (*models.FoodOrder, error) {
	var order models.FoodOrder
	err := r.gw.DB(ctx).Where("orderid = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, database.Classify(err)
	}
	order.OrderStatus = models.NormalizeStatus(string(order.OrderStatus))
	return &order, nil
}

func (r *Orders) UpdateStatus(ctx context.Context, id int, status models.OrderStatus) (int64, error) {
	return r.gw.Exec(ctx, "UPDATE foodorder SET orderstatus = ? WHERE orderid = ?", string(status), id)
}

// History lists a user's orders newest first. A limit of zero returns all of them.
func (r *Orders) History(ctx context.Context, login string, limit int) (*database.Rows, error) {
	query := "SELECT orderid, storeid, totalprice, ordertimestamp, orderstatus FROM foodorder WHERE login = ? ORDER BY ordertimestamp DESC, orderid DESC"
	if limit > 0 {
		return r.gw.Query(ctx, query+" LIMIT ?", login, limit)
	}
	return r.gw.Query(ctx, query, login)
}

func (r *Orders) Lines(ctx context.Context, id int) ([]models.ItemInOrder, error) {
	var lines []models.ItemInOrder
	if err := r.gw.DB(ctx).Where("orderid = ?", id).Order("itemname").Find(&lines).Error; err != nil {
		return nil, database.Classify(err)
	}
	return lines, nil
}
