package handlers

import (
	"GroceryApp-Backend/domain"
	"GroceryApp-Backend/internal/middleware"
	"GroceryApp-Backend/internal/utils"
	"GroceryApp-Backend/pkg/jwt"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestHandlers(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Handlers Suite")
}

// mockReceiptService is a mock implementation of receipt.ReceiptService
type mockReceiptService struct {
	uploadResp    domain.UploadReceiptResponse
	uploadErr     error
	expiring      []domain.ExpiringProductResponse
	expiringErr   error
	markErr       error
	purchases     []domain.PurchasedItemResponse
	receiptResp   domain.ReceiptResponse
	receiptErr    error
	reminderCount int
	reminderErr   error
}

func (m *mockReceiptService) UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, userID string) (domain.UploadReceiptResponse, error) {
	return m.uploadResp, m.uploadErr
}

func (m *mockReceiptService) GetExpiringProducts(ctx context.Context, userID string, startDate, endDate time.Time) ([]domain.ExpiringProductResponse, error) {
	return m.expiring, m.expiringErr
}

func (m *mockReceiptService) MarkProductsUsed(ctx context.Context, userID string, productIDs []string) error {
	return m.markErr
}

func (m *mockReceiptService) GetAllPurchases(ctx context.Context, userID string) ([]domain.PurchasedItemResponse, error) {
	return m.purchases, nil
}

func (m *mockReceiptService) GetReceiptByID(ctx context.Context, id string) (domain.ReceiptResponse, error) {
	return m.receiptResp, m.receiptErr
}

func (m *mockReceiptService) SendExpiryReminder(ctx context.Context, userID string) (int, error) {
	return m.reminderCount, m.reminderErr
}

var _ = Describe("ReceiptHandler", func() {
	var (
		app     *fiber.App
		service *mockReceiptService
		token   string
	)

	BeforeEach(func() {
		utils.InitValidator()
		service = &mockReceiptService{}
		jwtService := jwt.NewJWTService()
		middlewares := middleware.NewMiddleware()
		handler := NewReceiptHandler(service, utils.Validate)

		app = fiber.New()
		receipts := app.Group("/api/v1/receipts", middlewares.AuthMiddleware(jwtService))
		receipts.Post("/upload", handler.UploadReceipt)
		receipts.Get("/expiring", handler.GetExpiringProducts)
		receipts.Post("/mark-used", handler.MarkProductsUsed)
		receipts.Get("/:id", handler.GetReceipt)

		token = jwtService.GenerateTokenUser(uuid.NewString(), domain.RoleUser)
	})

	authorized := func(method, target string, body *strings.Reader) *http.Request {
		var req *http.Request
		if body != nil {
			req = httptest.NewRequest(method, target, body)
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, target, nil)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return req
	}

	Context("without a bearer token", func() {
		It("rejects the request with 401", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/receipts/expiring", nil)

			resp, err := app.Test(req)

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusUnauthorized))
		})
	})

	Describe("GET /expiring", func() {
		It("responds 204 when nothing is expiring", func() {
			service.expiring = []domain.ExpiringProductResponse{}

			resp, err := app.Test(authorized(http.MethodGet, "/api/v1/receipts/expiring", nil))

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusNoContent))
		})

		It("responds 200 with the products when some are expiring", func() {
			service.expiring = []domain.ExpiringProductResponse{
				{ID: uuid.NewString(), ProductName: "Milk"},
			}

			resp, err := app.Test(authorized(http.MethodGet, "/api/v1/receipts/expiring", nil))

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
		})
	})

	Describe("GET /:id", func() {
		It("responds 404 for an unknown receipt", func() {
			service.receiptErr = domain.ErrReceiptNotFound

			resp, err := app.Test(authorized(http.MethodGet, "/api/v1/receipts/"+uuid.NewString(), nil))

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusNotFound))
		})
	})

	Describe("POST /mark-used", func() {
		It("responds 400 when the id list is empty", func() {
			body := strings.NewReader(`{"product_ids": []}`)

			resp, err := app.Test(authorized(http.MethodPost, "/api/v1/receipts/mark-used", body))

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
		})

		It("responds 200 when ids are provided", func() {
			body := strings.NewReader(`{"product_ids": ["` + uuid.NewString() + `"]}`)

			resp, err := app.Test(authorized(http.MethodPost, "/api/v1/receipts/mark-used", body))

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
		})
	})

	Describe("POST /upload", func() {
		It("responds 400 when no file is attached", func() {
			resp, err := app.Test(authorized(http.MethodPost, "/api/v1/receipts/upload", nil))

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
		})
	})
})
