package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Farm to Door API 🌾. Fresh produce from local farms, delivered.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create an account (customer or farmer)
- POST "/auth/login" - Log in with email, password and role
- GET "/auth/profile" - Get your profile
- PUT "/auth/profile" - Update your profile and delivery address
- POST "/auth/forgot-password" - Request password reset
- POST "/auth/reset-password/:resetToken" - Reset password

PRODUCT
- GET "/product" - Browse the marketplace
- GET "/product/:id" - Get product by ID
- POST "/product" - Create a listing (farmer)
- PATCH "/product/:id" - Update a listing (farmer)
- DELETE "/product/:id" - Remove a listing (farmer)
- POST "/product/:id/image" - Upload a listing photo (farmer)
- GET "/farmer/products" - Your listings (farmer)
- GET "/farmer/products/low-stock" - Listings at or below threshold (farmer)

CART & CHECKOUT
- GET "/cart" - View your cart
- POST "/cart" - Add an item
- PATCH "/cart/:productId" - Change quantity
- DELETE "/cart/:productId" - Remove an item
- POST "/checkout/preview" - Purchase summary
- POST "/checkout/confirm" - Place the order

ORDER
- GET "/orders" - Your orders (customer)
- GET "/orders/:orderId" - Order detail
- POST "/orders/:orderId/rating" - Rate the farmer on a delivered order
- GET "/farmer/orders" - Orders for your farm (farmer)
- PATCH "/orders/:orderId/status" - Advance order status (farmer)

NOTIFICATIONS
- GET "/notifications" - Your notification feed
- PATCH "/notifications/:id/read" - Mark as read
- GET "/farmer/alerts" - Low stock alert history (farmer)
- GET "/ws/notifications" - Live notification stream (farmer)

ADMIN
- GET "/admin/stats" - Platform statistics
- GET "/admin/farmers" - Farmer directory with revenue
- PATCH "/admin/farmers/:farmerId/deactivate" - Remove a farmer
- PATCH "/admin/farmers/:farmerId/reactivate" - Restore a farmer
- GET "/admin/orders" - All orders
- GET "/admin/reports/sales" - Sales report (.xlsx)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
