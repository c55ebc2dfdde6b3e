package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/greenvalley/farmtodoor-api/models"
)

// GetMyNotifications returns the feed for the authenticated user,
// scoped by role.
func GetMyNotifications(ctx *gin.Context) {
	userID := getUserID(ctx)

	var (
		items []models.Notification
		err   error
	)
	if ctx.GetString("role") == models.RoleFarmer {
		items, err = notifications.ListForFarmer(userID)
	} else {
		items, err = notifications.ListForUser(userID)
	}
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch notifications")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"notifications": items})
}

func MarkNotificationRead(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	affected, err := notifications.MarkRead(uint(id), getUserID(ctx))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if affected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Notification not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// GetLowStockAlerts lists the farmer's alert history. Alerts are
// permanent; restocking does not clear them.
func GetLowStockAlerts(ctx *gin.Context) {
	alerts, err := notifications.AlertsForFarmer(getUserID(ctx))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch alerts")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"alerts": alerts})
}
