package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"party-planner-api/config"
	"party-planner-api/controllers"
	"party-planner-api/middleware"
	"party-planner-api/models"
	"party-planner-api/services"
)

func main() {
	log.Println("Starting Party Planner API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Provider{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderLine{},
		&models.Address{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Refresh tokens live in Redis
	if _, err := services.InitTokenStore(cfg); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// S3 and SendGrid are optional in development
	if _, err := services.InitS3Service(); err != nil {
		log.Printf("S3 service not available, image uploads disabled: %v", err)
	}
	if _, err := services.InitEmailService(cfg); err != nil {
		log.Printf("Email service not available, order emails disabled: %v", err)
	}

	router := setupRouter(cfg)

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires the route table. Everything business-level lives
// behind the API. Admin routes require an admin session.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	router.GET("/health", healthCheck)

	// Session endpoints
	router.POST("/signup", controllers.Signup)
	router.POST("/login", controllers.Login)
	router.POST("/refresh-token", controllers.RefreshToken)
	router.POST("/logout", controllers.Logout)

	// Public catalog
	router.GET("/product/all-products", controllers.ListAllProducts)
	router.GET("/product/:id", controllers.GetProduct)

	// Authenticated user routes
	authed := router.Group("/", middleware.RequireAuth(cfg))
	{
		authed.GET("/cart/user/:userId", controllers.GetCart)
		authed.POST("/cart/add/:userId", controllers.AddCartItem)
		authed.PUT("/cart/remove/:userId", controllers.RemoveCartItem)
		authed.DELETE("/cart/:cartId", controllers.DeleteCart)

		authed.POST("/order/add", controllers.CreateOrder)
		authed.GET("/order/:userId", controllers.GetUserOrders)
		authed.PUT("/order/update/:orderId", controllers.UpdateOrderStatus)

		authed.GET("/address/:userId", controllers.ListAddresses)
		authed.POST("/address/add", controllers.AddAddress)
		authed.PUT("/address/update", controllers.UpdateAddress)
		authed.DELETE("/address/:addressId", controllers.DeleteAddress)
	}

	// Admin console routes
	admin := router.Group("/", middleware.RequireAuth(cfg), middleware.RequireAdmin())
	{
		admin.GET("/category", controllers.ListCategories)
		admin.POST("/category/add", controllers.AddCategory)
		admin.PUT("/category/update", controllers.UpdateCategory)

		admin.GET("/location", controllers.ListLocations)
		admin.POST("/location/add", controllers.AddLocation)
		admin.PUT("/location/update", controllers.UpdateLocation)

		admin.GET("/provider", controllers.ListProviders)
		admin.POST("/provider/add", controllers.AddProvider)
		admin.PUT("/provider/update", controllers.UpdateProvider)

		admin.GET("/product", controllers.ListProducts)
		admin.POST("/product/add", controllers.AddProduct)
		admin.PUT("/product/update", controllers.UpdateProduct)
		admin.DELETE("/product/:id", controllers.DeleteProduct)
		admin.GET("/product/export", controllers.ExportProducts)

		admin.GET("/order", controllers.ListOrders)

		admin.POST("/upload", controllers.UploadImage)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Party Planner API is running",
	})
}
