package main

import (
	"log"
	"time"

	"mobile-shop-server/internal/config"
	"mobile-shop-server/internal/database"
	"mobile-shop-server/internal/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	database.Connect(cfg.DB.Path)
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })

	api := r.Group("/api")
	{
		api.GET("/phones", handlers.GetPhones)
		api.GET("/phones/:id", handlers.GetPhone)
		api.POST("/phones", handlers.AddPhone)
		api.PUT("/phones/:id", handlers.UpdatePhone)
		api.DELETE("/phones/:id", handlers.DeletePhone)

		api.GET("/products", handlers.GetProducts)
		api.GET("/products/:id", handlers.GetProduct)
		api.POST("/products", handlers.AddProduct)
		api.PUT("/products/:id", handlers.UpdateProduct)
		api.DELETE("/products/:id", handlers.DeleteProduct)

		api.GET("/customers", handlers.GetCustomers)
		api.GET("/customers/:id", handlers.GetCustomer)
		api.POST("/customers", handlers.AddCustomer)
		api.PUT("/customers/:id", handlers.UpdateCustomer)
		api.DELETE("/customers/:id", handlers.DeleteCustomer)
		api.GET("/customers/:id/ledger", handlers.GetCustomerLedger)
		api.POST("/customers/:id/ledger", handlers.AddCustomerLedgerEntry)

		api.GET("/partners", handlers.GetPartners)
		api.GET("/partners/:id", handlers.GetPartner)
		api.POST("/partners", handlers.AddPartner)
		api.PUT("/partners/:id", handlers.UpdatePartner)
		api.DELETE("/partners/:id", handlers.DeletePartner)
		api.GET("/partners/:id/ledger", handlers.GetPartnerLedger)
		api.POST("/partners/:id/ledger", handlers.AddPartnerLedgerEntry)

		api.POST("/orders", handlers.CreateOrder)
		api.GET("/orders", handlers.ListOrders)
		api.GET("/orders/:id/invoice", handlers.GetInvoice)

		api.POST("/installments", handlers.CreateInstallmentSale)
		api.GET("/installments", handlers.GetInstallmentSales)
		api.GET("/installments/:id", handlers.GetInstallmentSale)
		api.POST("/installments/:id/payments", handlers.RecordPayment)

		api.GET("/repairs", handlers.GetRepairs)
		api.GET("/repairs/:id", handlers.GetRepair)
		api.POST("/repairs", handlers.AddRepair)
		api.PUT("/repairs/:id", handlers.UpdateRepair)
		api.DELETE("/repairs/:id", handlers.DeleteRepair)

		api.GET("/settings", handlers.GetSettings)
		api.PUT("/settings", handlers.UpdateSettings)
	}

	log.Println("Server starting on " + cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
