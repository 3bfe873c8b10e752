package handlers

import (
	"GroceryApp-Backend/domain"
	"GroceryApp-Backend/internal/api/presenters"
	"GroceryApp-Backend/pkg/receipt"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// expiringWindowDays is the lookahead for the expiring-products view.
const expiringWindowDays = 7

type (
	ReceiptHandler interface {
		UploadReceipt(c *fiber.Ctx) error
		GetExpiringProducts(c *fiber.Ctx) error
		MarkProductsUsed(c *fiber.Ctx) error
		SendExpiryReminder(c *fiber.Ctx) error
		GetReceipt(c *fiber.Ctx) error
	}

	receiptHandler struct {
		receiptService receipt.ReceiptService
		validator      *validator.Validate
	}
)

func NewReceiptHandler(receiptService receipt.ReceiptService, validator *validator.Validate) ReceiptHandler {
	return &receiptHandler{
		receiptService: receiptService,
		validator:      validator,
	}
}

func (h *receiptHandler) UploadReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UploadReceiptRequest)

	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, domain.ErrNoFileUploaded)
	}
	req.ReceiptImage = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, err)
	}

	res, err := h.receiptService.UploadReceipt(c.Context(), *req, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoFileUploaded),
			errors.Is(err, domain.ErrInvalidImageFormat),
			errors.Is(err, domain.ErrParseUUID):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUploadReceipt, err)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadReceipt)
}

func (h *receiptHandler) GetExpiringProducts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	today := time.Now().Truncate(24 * time.Hour)
	endOfWeek := today.AddDate(0, 0, expiringWindowDays)

	products, err := h.receiptService.GetExpiringProducts(c.Context(), userID, today, endOfWeek)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetExpiring, err)
	}

	if len(products) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return presenters.SuccessResponse(c, products, fiber.StatusOK, domain.MessageSuccessGetExpiring)
}

func (h *receiptHandler) MarkProductsUsed(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.MarkProductsUsedRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkUsed, domain.ErrNoProductIDs)
	}

	if err := h.receiptService.MarkProductsUsed(c.Context(), userID, req.ProductIDs); err != nil {
		if errors.Is(err, domain.ErrNoProductIDs) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkUsed, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedMarkUsed, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkUsed)
}

func (h *receiptHandler) SendExpiryReminder(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	count, err := h.receiptService.SendExpiryReminder(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSendReminder, err)
	}

	if count == 0 {
		return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageNoExpiringProducts)
	}

	return presenters.SuccessResponse(c, fiber.Map{"products_included": count}, fiber.StatusOK, domain.MessageSuccessSendReminder)
}

func (h *receiptHandler) GetReceipt(c *fiber.Ctx) error {
	receiptID := c.Params("id")

	res, err := h.receiptService.GetReceiptByID(c.Context(), receiptID)
	if err != nil {
		if errors.Is(err, domain.ErrReceiptNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetReceipt, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReceipt)
}
