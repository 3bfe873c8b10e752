package receipt

import (
	"GroceryApp-Backend/domain"
	"GroceryApp-Backend/entities"
	"GroceryApp-Backend/internal/utils/mailing"
	"GroceryApp-Backend/internal/utils/storage"
	"GroceryApp-Backend/pkg/llm"
	"GroceryApp-Backend/pkg/ocr"
	"GroceryApp-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReceiptService interface {
		UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, userID string) (domain.UploadReceiptResponse, error)
		GetExpiringProducts(ctx context.Context, userID string, startDate, endDate time.Time) ([]domain.ExpiringProductResponse, error)
		MarkProductsUsed(ctx context.Context, userID string, productIDs []string) error
		GetAllPurchases(ctx context.Context, userID string) ([]domain.PurchasedItemResponse, error)
		GetReceiptByID(ctx context.Context, id string) (domain.ReceiptResponse, error)
		SendExpiryReminder(ctx context.Context, userID string) (int, error)
	}

	receiptService struct {
		receiptRepository ReceiptRepository
		userRepository    user.UserRepository
		s3                storage.AwsS3
		ocrService        ocr.OcrService
		llmService        llm.LlmService
	}
)

func NewReceiptService(
	receiptRepository ReceiptRepository,
	userRepository user.UserRepository,
	s3 storage.AwsS3,
	ocrService ocr.OcrService,
	llmService llm.LlmService,
) ReceiptService {
	return &receiptService{
		receiptRepository: receiptRepository,
		userRepository:    userRepository,
		s3:                s3,
		ocrService:        ocrService,
		llmService:        llmService,
	}
}

// UploadReceipt runs the ingestion pipeline: validate, store the image,
// OCR it, structure the text, persist the result. Blob and persistence
// failures abort; structuring never does (it degrades to an empty,
// low-confidence result instead).
func (s *receiptService) UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, userID string) (domain.UploadReceiptResponse, error) {
	if req.ReceiptImage == nil || req.ReceiptImage.Size == 0 {
		return domain.UploadReceiptResponse{}, domain.ErrNoFileUploaded
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.UploadReceiptResponse{}, domain.ErrParseUUID
	}

	fileName := filepath.Base(req.ReceiptImage.Filename)
	objectKey, err := s.s3.UploadFile(fileName, req.ReceiptImage, "receipts", storage.AllowImage...)
	if err != nil {
		return domain.UploadReceiptResponse{}, fmt.Errorf("%w: %v", domain.ErrBlobUploadFailed, err)
	}
	imageURL := s.s3.GetPublicLinkKey(objectKey)

	ocrText, err := s.ocrService.AnalyzeReceipt(ctx, imageURL)
	if err != nil {
		return domain.UploadReceiptResponse{}, fmt.Errorf("%w: %v", domain.ErrOcrFailed, err)
	}

	receiptData := s.llmService.ExtractProductInfo(ctx, ocrText)

	receiptID := uuid.New()
	receiptEntity := &entities.Receipt{
		ID:            receiptID,
		UserID:        userUUID,
		ImageURL:      imageURL,
		OcrText:       ocrText,
		LowConfidence: receiptData.LowConfidence,
	}
	for i, product := range receiptData.Products {
		productID := uuid.New()
		receiptData.Products[i].ID = productID.String()
		receiptEntity.Products = append(receiptEntity.Products, &entities.Product{
			ID:              productID,
			UserID:          userUUID,
			ReceiptID:       receiptID,
			ProductName:     product.ProductName,
			NutritionalInfo: product.NutritionalInfo,
			ShelfLife:       product.ShelfLife,
			FoodCategory:    product.FoodCategory,
			Unit:            product.Unit,
			Quantity:        product.Quantity,
			Confidence:      product.Confidence,
			ExpirationDate:  product.ExpirationDate,
		})
	}

	if err := s.receiptRepository.CreateReceipt(ctx, receiptEntity); err != nil {
		// OCR and LLM cost is already spent; the uploaded blob stays behind
		// without a record. Logged, not compensated.
		log.Printf("receipt persistence failed, blob %s orphaned: %v", objectKey, err)
		return domain.UploadReceiptResponse{}, fmt.Errorf("%w: %v", domain.ErrReceiptPersistFailed, err)
	}

	receiptData.ReceiptID = receiptID.String()

	return domain.UploadReceiptResponse{
		URL:         imageURL,
		OcrText:     ocrText,
		ReceiptData: receiptData,
	}, nil
}

// GetExpiringProducts returns the unused products expiring inside the window,
// latest expiration first. Ordering is enforced here, not left to the store.
func (s *receiptService) GetExpiringProducts(ctx context.Context, userID string, startDate, endDate time.Time) ([]domain.ExpiringProductResponse, error) {
	products, err := s.receiptRepository.GetExpiringProducts(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	response := make([]domain.ExpiringProductResponse, 0, len(products))
	for _, product := range products {
		response = append(response, domain.ExpiringProductResponse{
			ID:             product.ID.String(),
			ProductName:    product.ProductName,
			FoodCategory:   product.FoodCategory,
			Unit:           product.Unit,
			Quantity:       product.Quantity,
			Confidence:     product.Confidence,
			ExpirationDate: product.ExpirationDate,
		})
	}

	sort.Slice(response, func(i, j int) bool {
		return response[i].ExpirationDate.After(response[j].ExpirationDate)
	})

	return response, nil
}

// MarkProductsUsed flips the used flag on each owned product. Unknown ids
// and ids owned by another user are skipped without failing the batch, and
// a failed update of one id does not abort the rest.
func (s *receiptService) MarkProductsUsed(ctx context.Context, userID string, productIDs []string) error {
	if len(productIDs) == 0 {
		return domain.ErrNoProductIDs
	}

	for _, id := range productIDs {
		product, err := s.receiptRepository.GetProductByID(ctx, id)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("fetching product %s: %v", id, err)
			}
			continue
		}

		if product.UserID.String() != userID {
			continue
		}

		product.IsUsed = true
		if err := s.receiptRepository.UpdateProduct(ctx, product); err != nil {
			log.Printf("marking product %s as used: %v", id, err)
		}
	}

	return nil
}

func (s *receiptService) GetAllPurchases(ctx context.Context, userID string) ([]domain.PurchasedItemResponse, error) {
	products, err := s.receiptRepository.GetProductsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.PurchasedItemResponse, 0, len(products))
	for _, product := range products {
		response = append(response, purchasedItemResponse(product))
	}

	return response, nil
}

func (s *receiptService) GetReceiptByID(ctx context.Context, id string) (domain.ReceiptResponse, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReceiptResponse{}, domain.ErrReceiptNotFound
		}
		return domain.ReceiptResponse{}, err
	}

	response := domain.ReceiptResponse{
		ID:            receipt.ID.String(),
		ImageURL:      receipt.ImageURL,
		OcrText:       receipt.OcrText,
		LowConfidence: receipt.LowConfidence,
		Products:      make([]domain.PurchasedItemResponse, 0, len(receipt.Products)),
		CreatedAt:     receipt.CreatedAt,
	}
	for _, product := range receipt.Products {
		response.Products = append(response.Products, purchasedItemResponse(product))
	}

	return response, nil
}

// SendExpiryReminder mails the user a digest of products expiring within the
// next week. Returns the number of products included; zero means no mail
// was sent.
func (s *receiptService) SendExpiryReminder(ctx context.Context, userID string) (int, error) {
	owner, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrUserNotFound
		}
		return 0, err
	}

	now := time.Now()
	products, err := s.receiptRepository.GetExpiringProducts(ctx, userID, now, now.AddDate(0, 0, 7))
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, nil
	}

	body := expiryDigestBody(owner.Name, products)
	if err := mailing.SendMail(owner.Email, "Groceries expiring this week", body); err != nil {
		return 0, err
	}

	return len(products), nil
}

func expiryDigestBody(name string, products []*entities.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p><p>The following groceries expire within a week:</p><ul>", name)
	for _, product := range products {
		fmt.Fprintf(&b, "<li>%s (%s %s) - expires %s</li>",
			product.ProductName,
			product.Quantity,
			product.Unit,
			product.ExpirationDate.Format("02 Jan 2006"),
		)
	}
	b.WriteString("</ul>")
	return b.String()
}

func purchasedItemResponse(product *entities.Product) domain.PurchasedItemResponse {
	return domain.PurchasedItemResponse{
		ID:              product.ID.String(),
		ProductName:     product.ProductName,
		NutritionalInfo: product.NutritionalInfo,
		ShelfLife:       product.ShelfLife,
		FoodCategory:    product.FoodCategory,
		Unit:            product.Unit,
		Quantity:        product.Quantity,
		Confidence:      product.Confidence,
		ExpirationDate:  product.ExpirationDate,
		IsUsed:          product.IsUsed,
	}
}
