package receipt

import (
	"GroceryApp-Backend/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	ReceiptRepository interface {
		CreateReceipt(ctx context.Context, receipt *entities.Receipt) error
		GetReceiptByID(ctx context.Context, id string) (*entities.Receipt, error)
		GetProductByID(ctx context.Context, id string) (*entities.Product, error)
		UpdateProduct(ctx context.Context, product *entities.Product) error
		GetExpiringProducts(ctx context.Context, userID string, startDate, endDate time.Time) ([]*entities.Product, error)
		GetProductsByUser(ctx context.Context, userID string) ([]*entities.Product, error)
	}

	receiptRepository struct {
		db *gorm.DB
	}
)

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

// CreateReceipt writes the receipt and its products as a single unit.
func (r *receiptRepository) CreateReceipt(ctx context.Context, receipt *entities.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetReceiptByID(ctx context.Context, id string) (*entities.Receipt, error) {
	var receipt entities.Receipt
	if err := r.db.WithContext(ctx).Preload("Products").Where("id = ?", id).First(&receipt).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) GetProductByID(ctx context.Context, id string) (*entities.Product, error) {
	var product entities.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *receiptRepository) UpdateProduct(ctx context.Context, product *entities.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *receiptRepository) GetExpiringProducts(ctx context.Context, userID string, startDate, endDate time.Time) ([]*entities.Product, error) {
	var products []*entities.Product

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND expiration_date BETWEEN ? AND ? AND is_used = ?",
			userID, startDate, endDate, false).
		Order("expiration_date desc").
		Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *receiptRepository) GetProductsByUser(ctx context.Context, userID string) ([]*entities.Product, error) {
	var products []*entities.Product

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}
