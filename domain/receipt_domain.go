package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessUploadReceipt = "receipt uploaded and processed successfully"
	MessageSuccessGetExpiring   = "expiring products retrieved successfully"
	MessageSuccessMarkUsed      = "selected products have been marked as used"
	MessageSuccessGetReceipt    = "receipt retrieved successfully"
	MessageSuccessGetHistory    = "shopping history retrieved successfully"
	MessageSuccessSendReminder  = "expiry reminder sent successfully"
	MessageNoExpiringProducts   = "no products expiring in the next days"

	MessageFailedUploadReceipt = "failed to upload receipt"
	MessageFailedGetExpiring   = "failed to retrieve expiring products"
	MessageFailedMarkUsed      = "failed to mark products as used"
	MessageFailedGetReceipt    = "failed to retrieve receipt"
	MessageFailedGetHistory    = "failed to retrieve shopping history"
	MessageFailedSendReminder  = "failed to send expiry reminder"

	ErrNoFileUploaded       = errors.New("no file uploaded")
	ErrInvalidImageFormat   = errors.New("invalid image format")
	ErrNoProductIDs         = errors.New("no product IDs provided")
	ErrReceiptNotFound      = errors.New("receipt not found")
	ErrBlobUploadFailed     = errors.New("failed to store receipt image")
	ErrOcrFailed            = errors.New("failed to analyze receipt image")
	ErrReceiptPersistFailed = errors.New("failed to persist receipt")
)

type (
	// ProductInfo is one structured product candidate extracted from a
	// receipt. Confidence is reported by the model and left unclamped.
	ProductInfo struct {
		ID              string    `json:"id,omitempty"`
		ProductName     string    `json:"product_name"`
		NutritionalInfo string    `json:"nutritional_info,omitempty"`
		ShelfLife       string    `json:"shelf_life,omitempty"`
		FoodCategory    string    `json:"food_category,omitempty"`
		Unit            string    `json:"unit,omitempty"`
		Quantity        string    `json:"quantity,omitempty"`
		Confidence      float64   `json:"confidence"`
		ExpirationDate  time.Time `json:"expiration_date"`
	}

	// ReceiptData is the result of one structuring pass. LowConfidence is
	// derived, never set by callers: it is true when extraction failed
	// outright or when any product scored below the confidence threshold.
	ReceiptData struct {
		ReceiptID     string        `json:"receipt_id,omitempty"`
		Products      []ProductInfo `json:"products"`
		LowConfidence bool          `json:"low_confidence"`
	}

	UploadReceiptRequest struct {
		ReceiptImage *multipart.FileHeader `json:"file" form:"file" validate:"required"`
	}

	UploadReceiptResponse struct {
		URL         string      `json:"url"`
		OcrText     string      `json:"ocr_text"`
		ReceiptData ReceiptData `json:"receipt_data"`
	}

	MarkProductsUsedRequest struct {
		ProductIDs []string `json:"product_ids" validate:"required,min=1"`
	}

	ExpiringProductResponse struct {
		ID             string    `json:"id"`
		ProductName    string    `json:"product_name"`
		FoodCategory   string    `json:"food_category,omitempty"`
		Unit           string    `json:"unit,omitempty"`
		Quantity       string    `json:"quantity,omitempty"`
		Confidence     float64   `json:"confidence"`
		ExpirationDate time.Time `json:"expiration_date"`
	}

	PurchasedItemResponse struct {
		ID              string    `json:"id"`
		ProductName     string    `json:"product_name"`
		NutritionalInfo string    `json:"nutritional_info,omitempty"`
		ShelfLife       string    `json:"shelf_life,omitempty"`
		FoodCategory    string    `json:"food_category,omitempty"`
		Unit            string    `json:"unit,omitempty"`
		Quantity        string    `json:"quantity,omitempty"`
		Confidence      float64   `json:"confidence"`
		ExpirationDate  time.Time `json:"expiration_date"`
		IsUsed          bool      `json:"is_used"`
	}

	ReceiptResponse struct {
		ID            string                  `json:"id"`
		ImageURL      string                  `json:"image_url"`
		OcrText       string                  `json:"ocr_text,omitempty"`
		LowConfidence bool                    `json:"low_confidence"`
		Products      []PurchasedItemResponse `json:"products"`
		CreatedAt     time.Time               `json:"created_at"`
	}
)
