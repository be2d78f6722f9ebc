package routes

import (
	"farmfresh_back_end/internal/handlers"
	"farmfresh_back_end/internal/handlers/cart"
	"farmfresh_back_end/internal/handlers/farmer"
	"farmfresh_back_end/internal/handlers/product"
	"farmfresh_back_end/internal/handlers/user"
	"farmfresh_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// --- Utilisateurs ---
	users := api.Group("/users")
	{
		users.POST("/register", middleware.RegisterRateLimit(), user.Register)
		users.POST("/admin-register", user.RegisterAdmin)
		users.POST("/login", middleware.LoginRateLimit(), user.Login)

		users.GET("/all", middleware.AuthRequired(), middleware.RequireAdmin, user.GetAllUsers)
		users.PUT("/farmer-status/:farmerId", middleware.AuthRequired(), middleware.RequireAdmin, user.UpdateFarmerStatus)
		users.GET("/farmer-document/:farmerId", middleware.AuthRequired(), middleware.RequireAdmin, user.GetFarmerDocument)

		users.GET("/:id", middleware.AuthRequired(), user.GetUserByID)
		users.PUT("/:id", middleware.AuthRequired(), user.UpdateUser)
		users.DELETE("/:id", middleware.AuthRequired(), user.DeleteUser)
		users.POST("/:id/avatar", middleware.AuthRequired(), user.UpdateAvatar)
	}

	// --- Vendeurs ---
	farmers := api.Group("/farmers")
	{
		farmers.POST("/register", middleware.RegisterRateLimit(), farmer.Register)
	}

	// --- Produits ---
	products := api.Group("/products")
	{
		// routes publiques
		products.GET("/approved", product.GetApprovedProducts)
		products.GET("/search", product.SearchProducts)

		// routes vendeur
		products.POST("/add", middleware.AuthRequired(), middleware.RequireFarmer, product.CreateProduct)
		products.PUT("/:productId", middleware.AuthRequired(), middleware.RequireFarmer, product.UpdateProduct)
		products.DELETE("/:productId", middleware.AuthRequired(), middleware.RequireFarmer, product.DeleteProduct)

		// routes admin
		products.GET("/all", middleware.AuthRequired(), middleware.RequireAdmin, product.GetAllProducts)
		products.GET("/pending", middleware.AuthRequired(), middleware.RequireAdmin, product.GetPendingProducts)
		products.PUT("/:productId/status", middleware.AuthRequired(), middleware.RequireAdmin, product.UpdateProductStatus)

		// lecture authentifiée
		products.GET("/:productId", middleware.AuthRequired(), product.GetProductByID)
	}

	// --- Panier ---
	carts := api.Group("/cart", middleware.AuthRequired())
	{
		carts.POST("/add", middleware.CartRateLimit(), cart.AddToCart)
		carts.GET("", cart.GetCart)
		carts.PUT("/update/:productId", cart.UpdateCartItem)
		carts.DELETE("/remove/:productId", cart.RemoveFromCart)
		carts.DELETE("/clear", cart.ClearCart)
	}

	// --- Contact ---
	api.POST("/contact", handlers.SendContactMessage)
}
