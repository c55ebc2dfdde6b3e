package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/greenvalley/farmtodoor-api/services"
)

// PreviewCheckout validates the cart and returns the purchase summary
// without committing anything. The client either confirms or simply
// walks away.
func PreviewCheckout(ctx *gin.Context) {
	summary, err := checkoutService.Preview(getUserID(ctx))
	if err != nil {
		mapServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"summary": summary})
}

// ConfirmCheckout places the order and hands the confirmation email,
// chat message and invoice request to the outbound queue.
func ConfirmCheckout(ctx *gin.Context) {
	userID := getUserID(ctx)

	order, err := checkoutService.Confirm(userID)
	if err != nil {
		mapServiceError(ctx, err)
		return
	}

	if notifier != nil {
		if user, err := users.FindByID(userID); err == nil {
			for _, kind := range []services.NotificationTaskKind{
				services.TaskEmail,
				services.TaskChatMessage,
				services.TaskInvoice,
			} {
				notifier.Enqueue(services.NotificationTask{Kind: kind, Order: *order, User: *user})
			}
		}
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order placed successfully!",
		"order":   order,
	})
}
