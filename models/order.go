package models

import (
	"strings"
	"time"
)

// OrderStatus represents the known states of a pizza order
type OrderStatus string

const (
	StatusIncomplete OrderStatus = "incomplete"
	StatusComplete   OrderStatus = "complete"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// NormalizeStatus trims and lower-cases a status as typed or stored.
func NormalizeStatus(s string) OrderStatus {
	return OrderStatus(strings.ToLower(strings.TrimSpace(s)))
}

type FoodOrder struct {
	OrderID        int         `json:"orderID" gorm:"column:orderid;primaryKey"`
	Login          string      `json:"login" gorm:"column:login;not null"`
	StoreID        int         `json:"storeID" gorm:"column:storeid;not null"`
	TotalPrice     float64     `json:"totalPrice" gorm:"column:totalprice;not null"`
	OrderTimestamp time.Time   `json:"orderTimestamp" gorm:"column:ordertimestamp;not null"`
	OrderStatus    OrderStatus `json:"orderStatus" gorm:"column:orderstatus;not null"`
}

func (FoodOrder) TableName() string { return "foodorder" }

// ItemInOrder is one line of an order; the table is filled by the ordering system.
type ItemInOrder struct {
	OrderID  int    `json:"orderID" gorm:"column:orderid;primaryKey"`
	ItemName string `json:"itemName" gorm:"column:itemname;primaryKey"`
	Quantity int    `json:"quantity" gorm:"column:quantity;not null"`
}

func (ItemInOrder) TableName() string { return "itemsinorder" }

// All lists every table model, in dependency order.
func All() []any {
	return []any{&User{}, &Item{}, &Store{}, &FoodOrder{}, &ItemInOrder{}}
}
