package models

import (
	"strings"

	"gorm.io/gorm"
)

// Item is a menu entry, keyed by name.
type Item struct {
	ItemName    string  `json:"itemName" gorm:"column:itemname;primaryKey"`
	Ingredients string  `json:"ingredients" gorm:"column:ingredients;not null"`
	TypeOfItem  string  `json:"typeOfItem" gorm:"column:typeofitem;not null"`
	Price       float64 `json:"price" gorm:"column:price;not null"`
	Description string  `json:"description" gorm:"column:description"`
}

func (Item) TableName() string { return "items" }

func (i *Item) AfterFind(*gorm.DB) error {
	i.ItemName = strings.TrimRight(i.ItemName, " ")
	i.TypeOfItem = strings.TrimRight(i.TypeOfItem, " ")
	return nil
}
