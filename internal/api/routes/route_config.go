package routes

import (
	"GroceryApp-Backend/internal/api/handlers"
	"GroceryApp-Backend/internal/middleware"
	"GroceryApp-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	ReceiptHandler handlers.ReceiptHandler
	HistoryHandler handlers.HistoryHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Receipts()
	c.ShoppingHistory()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Receipts() {
	receipts := c.App.Group("/api/v1/receipts", c.Middleware.AuthMiddleware(c.JWTService))

	receipts.Post("/upload", c.ReceiptHandler.UploadReceipt)
	receipts.Get("/expiring", c.ReceiptHandler.GetExpiringProducts)
	receipts.Post("/expiring/notify", c.ReceiptHandler.SendExpiryReminder)
	receipts.Post("/mark-used", c.ReceiptHandler.MarkProductsUsed)
	receipts.Get("/:id", c.ReceiptHandler.GetReceipt)
}

func (c *Config) ShoppingHistory() {
	c.App.Get(
		"/api/v1/shopping-history",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.HistoryHandler.GetShoppingHistory,
	)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
