package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rackit-dev/birdie/controllers"
)

// RegisterUserRoutes sets up all user-related routes.
func RegisterUserRoutes(r *gin.Engine, uc *controllers.UserController) {
	userRoutes := r.Group("/api/users")

	userRoutes.POST("", uc.CreateUser)
	userRoutes.GET("", uc.ListUsers)
	userRoutes.GET("/by_id", uc.GetUserByID)
	userRoutes.PUT("", uc.UpdateUser)
	userRoutes.DELETE("", uc.DeleteUser)
}

// RegisterProductRoutes sets up all product-related routes.
func RegisterProductRoutes(r *gin.Engine, pc *controllers.ProductController) {
	productRoutes := r.Group("/api/products")

	productRoutes.POST("", pc.CreateProduct)
	productRoutes.GET("", pc.ListProducts)
	productRoutes.GET("/by_id", pc.GetProductByID)
	productRoutes.PUT("", pc.UpdateProduct)
	productRoutes.DELETE("", pc.DeactivateProduct)
}

// RegisterCartRoutes sets up all cart-item routes.
func RegisterCartRoutes(r *gin.Engine, cc *controllers.CartController) {
	cartRoutes := r.Group("/api/cartitems")

	cartRoutes.POST("", cc.AddCartItem)
	cartRoutes.GET("", cc.ListCartItems)
	cartRoutes.PUT("", cc.UpdateCartItem)
	cartRoutes.DELETE("", cc.RemoveCartItem)
}

// RegisterOrderRoutes sets up order and payment routes. Payment endpoints
// live under /api/orders/payment because a payment is always scoped to an
// order.
func RegisterOrderRoutes(r *gin.Engine, oc *controllers.OrderController, pc *controllers.PaymentController) {
	orderRoutes := r.Group("/api/orders")

	orderRoutes.POST("", oc.CreateOrder)
	orderRoutes.GET("", oc.ListOrders)
	orderRoutes.GET("/by_id", oc.GetOrderByID)
	orderRoutes.PUT("", oc.UpdateOrderStatus)
	orderRoutes.DELETE("", oc.DeleteOrder)

	paymentRoutes := orderRoutes.Group("/payment")
	paymentRoutes.POST("/webhook", pc.HandleWebhook)
	paymentRoutes.POST("/webhook/test", pc.HandleWebhookTest)
	paymentRoutes.POST("/refund/whole", pc.RefundWhole)
	paymentRoutes.GET("/by_order_id", pc.GetPaymentByOrder)
}

// RegisterCouponRoutes sets up coupon and coupon-wallet routes.
func RegisterCouponRoutes(r *gin.Engine, cc *controllers.CouponController) {
	couponRoutes := r.Group("/api/coupons")

	couponRoutes.POST("", cc.CreateCoupon)
	couponRoutes.GET("", cc.ListCoupons)
	couponRoutes.GET("/by_id", cc.GetCouponByID)
	couponRoutes.PUT("", cc.DeactivateCoupon)

	walletRoutes := couponRoutes.Group("/wallet")
	walletRoutes.POST("", cc.IssueWallet)
	walletRoutes.GET("", cc.ListWalletsByUser)
	walletRoutes.GET("/by_id", cc.GetWalletByID)
	walletRoutes.PUT("/use", cc.UseWallet)
	walletRoutes.DELETE("", cc.DeleteWallet)
}

// RegisterHealthRoute exposes a liveness endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
}
