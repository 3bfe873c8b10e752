package handlers

import (
	"GroceryApp-Backend/domain"
	"GroceryApp-Backend/internal/api/presenters"
	"GroceryApp-Backend/pkg/receipt"

	"github.com/gofiber/fiber/v2"
)

type (
	HistoryHandler interface {
		GetShoppingHistory(c *fiber.Ctx) error
	}

	historyHandler struct {
		receiptService receipt.ReceiptService
	}
)

func NewHistoryHandler(receiptService receipt.ReceiptService) HistoryHandler {
	return &historyHandler{receiptService: receiptService}
}

func (h *historyHandler) GetShoppingHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	items, err := h.receiptService.GetAllPurchases(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetHistory, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetHistory)
}
