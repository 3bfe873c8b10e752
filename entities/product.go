package entities

import (
	"github.com/google/uuid"
	"time"
)

// Product is one grocery item extracted from a receipt. Quantity stays a
// string because receipt text is unnormalized ("2x", "1.5 kg", "ea").
type Product struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	ReceiptID       uuid.UUID `json:"receipt_id"`
	ProductName     string    `json:"product_name"`
	NutritionalInfo string    `json:"nutritional_info,omitempty" gorm:"type:text"`
	ShelfLife       string    `json:"shelf_life,omitempty"`
	FoodCategory    string    `json:"food_category,omitempty"`
	Unit            string    `json:"unit,omitempty"`
	Quantity        string    `json:"quantity,omitempty"`
	Confidence      float64   `json:"confidence"`
	ExpirationDate  time.Time `json:"expiration_date"`
	IsUsed          bool      `json:"is_used" gorm:"default:false"`

	User    *User    `gorm:"foreignKey:UserID"`
	Receipt *Receipt `gorm:"foreignKey:ReceiptID"`
	Timestamp
}
