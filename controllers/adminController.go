package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/greenvalley/farmtodoor-api/models"
)

// GetPlatformStats aggregates the numbers the admin dashboard shows:
// headcounts, order volume, total and monthly revenue.
func GetPlatformStats(ctx *gin.Context) {
	var totalUsers, totalFarmers, totalProducts, totalOrders int64
	db.Model(&models.User{}).Where("role = ?", models.RoleUser).Count(&totalUsers)
	db.Model(&models.User{}).Where("role = ? AND is_active = ?", models.RoleFarmer, true).Count(&totalFarmers)
	db.Model(&models.Product{}).Count(&totalProducts)
	db.Model(&models.Order{}).Count(&totalOrders)

	orderList, err := orders.ListAll()
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to compute revenue")
		return
	}

	var totalRevenue float64
	monthlyRevenue := make(map[string]float64)
	for _, order := range orderList {
		totalRevenue += order.Total
		monthlyRevenue[order.OrderDate.Format("2006-01")] += order.Total
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"totalUsers":     totalUsers,
		"totalFarmers":   totalFarmers,
		"totalProducts":  totalProducts,
		"totalOrders":    totalOrders,
		"totalRevenue":   totalRevenue,
		"monthlyRevenue": monthlyRevenue,
	})
}

// GetFarmers lists every farmer with order count, revenue and rating
// for the admin directory. Deactivated farmers stay in the list.
func GetFarmers(ctx *gin.Context) {
	farmers, err := users.ListByRole(models.RoleFarmer)
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch farmers")
		return
	}

	type farmerRow struct {
		models.User
		OrderCount int     `json:"orderCount"`
		Revenue    float64 `json:"revenue"`
	}

	rows := make([]farmerRow, 0, len(farmers))
	for _, farmer := range farmers {
		farmerOrders, err := orders.ListForFarmer(farmer.ID, "desc")
		if err != nil {
			log.Println(err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch farmer orders")
			return
		}
		var revenue float64
		for _, order := range farmerOrders {
			revenue += order.Total
		}
		rows = append(rows, farmerRow{User: farmer, OrderCount: len(farmerOrders), Revenue: revenue})
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"farmers": rows})
}

func GetUsers(ctx *gin.Context) {
	userList, err := users.ListByRole(models.RoleUser)
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch users")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"users": userList})
}

func setFarmerActive(ctx *gin.Context, active bool, successMessage string) {
	farmerID, err := strconv.Atoi(ctx.Param("farmerId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid farmer ID")
		return
	}

	affected, err := users.SetFarmerActive(uint(farmerID), active)
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if affected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Farmer not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": successMessage})
}

// DeactivateFarmer soft-deletes a farmer. Their listings disappear
// from the marketplace; farmer snapshots already copied onto orders
// are left alone.
func DeactivateFarmer(ctx *gin.Context) {
	setFarmerActive(ctx, false, "Farmer has been removed from the platform.")
}

func ReactivateFarmer(ctx *gin.Context) {
	setFarmerActive(ctx, true, "Farmer has been restored.")
}
