package models

type Store struct {
	StoreID     int      `json:"storeID" gorm:"column:storeid;primaryKey"`
	Address     string   `json:"address" gorm:"column:address;not null"`
	City        string   `json:"city" gorm:"column:city;not null"`
	State       string   `json:"state" gorm:"column:state;not null"`
	IsOpen      string   `json:"isOpen" gorm:"column:isopen;not null"`
	ReviewScore *float64 `json:"reviewScore" gorm:"column:reviewscore"`
}

func (Store) TableName() string { return "store" }
