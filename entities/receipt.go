package entities

import (
	"github.com/google/uuid"
)

type Receipt struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	ImageURL      string    `json:"image_url"`
	OcrText       string    `json:"ocr_text,omitempty" gorm:"type:text"`
	LowConfidence bool      `json:"low_confidence"`

	User     *User      `gorm:"foreignKey:UserID"`
	Products []*Product `gorm:"foreignKey:ReceiptID"`
	Timestamp
}
