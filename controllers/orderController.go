package controllers

import (
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/greenvalley/farmtodoor-api/models"
	"github.com/greenvalley/farmtodoor-api/services"
)

func sortOrderParam(ctx *gin.Context) string {
	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}
	return sortOrder
}

// GetMyOrders lists the authenticated customer's orders.
func GetMyOrders(ctx *gin.Context) {
	orderList, err := orders.ListForUser(getUserID(ctx), sortOrderParam(ctx))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orderList})
}

// GetFarmerOrders lists orders credited to the authenticated farmer.
func GetFarmerOrders(ctx *gin.Context) {
	orderList, err := orders.ListForFarmer(getUserID(ctx), sortOrderParam(ctx))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orderList})
}

// GetOrder returns a single order to its customer, its farmer or an
// admin.
func GetOrder(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	order, err := orders.FindByID(uint(orderID))
	if err != nil {
		mapServiceError(ctx, services.ErrOrderNotFound)
		return
	}

	userID := getUserID(ctx)
	role := ctx.GetString("role")
	if role != models.RoleAdmin && order.UserID != userID && order.FarmerID != userID {
		mapServiceError(ctx, services.ErrForbidden)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// statusPredecessor maps each reachable status to the one it must be
// advanced from. Orders only ever move forward.
var statusPredecessor = map[string]string{
	models.OrderStatusProcessing: models.OrderStatusPending,
	models.OrderStatusDelivered:  models.OrderStatusProcessing,
}

// UpdateOrderStatus advances an order along pending -> processing ->
// delivered. The transition is guarded, so a stale or repeated request
// fails instead of skipping states.
func UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	order, err := orders.FindByID(uint(orderID))
	if err != nil {
		mapServiceError(ctx, services.ErrOrderNotFound)
		return
	}

	role := ctx.GetString("role")
	if role != models.RoleAdmin && order.FarmerID != getUserID(ctx) {
		mapServiceError(ctx, services.ErrForbidden)
		return
	}

	from, ok := statusPredecessor[orderStatusData.Status]
	if !ok {
		mapServiceError(ctx, services.ErrInvalidTransition)
		return
	}

	affected, err := orders.UpdateStatusGuard(db, order.ID, from, orderStatusData.Status)
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		return
	}
	if affected == 0 {
		mapServiceError(ctx, services.ErrInvalidTransition)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully."})
}

// SubmitOrderRating records a 1-5 farmer rating against a delivered
// order.
func SubmitOrderRating(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var ratingData struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := ctx.ShouldBindJSON(&ratingData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := ratingService.Submit(getUserID(ctx), uint(orderID), ratingData.Rating, ratingData.Comment); err != nil {
		mapServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Rating submitted successfully!"})
}

// GetOrders lists all orders for the admin dashboard, paged and
// searchable by order number.
func GetOrders(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	orderList, count, err := orders.List(ctx.Query("search"), sortOrderParam(ctx), limit, offset)
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orders": orderList,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

func DeleteOrder(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id.")
		return
	}

	if err := orders.Delete(uint(orderID)); err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete order.")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted successfully."})
}

func GetUndeliveredOrders(ctx *gin.Context) {
	count, err := orders.CountUndelivered()
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to count undelivered orders")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"undeliveredOrderCount": count})
}
