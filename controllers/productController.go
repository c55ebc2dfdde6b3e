package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/greenvalley/farmtodoor-api/models"
	"github.com/greenvalley/farmtodoor-api/services"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

// GetProducts lists the marketplace. Listings from deactivated farmers
// are hidden; filters match the dashboard controls (search, category,
// in-stock / low-stock / out-of-stock).
func GetProducts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "12"))
	offset := (page - 1) * limit

	productList, count, err := products.List(
		ctx.Query("search"),
		ctx.Query("category"),
		ctx.Query("stock"),
		limit, offset,
	)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"products": productList,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	product, err := products.FindByID(uint(productID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// CreateProduct adds a listing under the authenticated farmer.
func CreateProduct(ctx *gin.Context) {
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	farmer, err := users.FindByID(getUserID(ctx))
	if err != nil {
		respondWithError(ctx, http.StatusUnauthorized, "Farmer not found", err)
		return
	}

	product.FarmerID = farmer.ID
	product.FarmerName = farmer.DisplayName()
	product.AddedDate = time.Now()
	if product.LowStockThreshold <= 0 {
		product.LowStockThreshold = models.DefaultLowStockThreshold
	}
	if product.Stock < 0 {
		product.Stock = 0
	}

	if err := products.Create(&product); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

func findOwnProduct(ctx *gin.Context) (*models.Product, bool) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return nil, false
	}

	product, err := products.FindByID(uint(productID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", err)
		}
		return nil, false
	}

	if ctx.GetString("role") != models.RoleAdmin && product.FarmerID != getUserID(ctx) {
		mapServiceError(ctx, services.ErrForbidden)
		return nil, false
	}
	return product, true
}

// UpdateProduct edits a farmer's own listing, including restocking and
// tuning the low-stock threshold. Restocking does not clear an alert
// that already fired for this product.
func UpdateProduct(ctx *gin.Context) {
	product, ok := findOwnProduct(ctx)
	if !ok {
		return
	}

	var body struct {
		Name              *string  `json:"name"`
		Description       *string  `json:"description"`
		Price             *float64 `json:"price"`
		Unit              *string  `json:"unit"`
		Category          *string  `json:"category"`
		Stock             *int     `json:"stock"`
		LowStockThreshold *int     `json:"lowStockThreshold"`
		IsOrganic         *bool    `json:"isOrganic"`
		HarvestDate       *string  `json:"harvestDate"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if body.Name != nil {
		product.Name = *body.Name
	}
	if body.Description != nil {
		product.Description = *body.Description
	}
	if body.Price != nil && *body.Price > 0 {
		product.Price = *body.Price
	}
	if body.Unit != nil {
		product.Unit = *body.Unit
	}
	if body.Category != nil {
		product.Category = *body.Category
	}
	if body.Stock != nil && *body.Stock >= 0 {
		product.Stock = *body.Stock
	}
	if body.LowStockThreshold != nil && *body.LowStockThreshold > 0 {
		product.LowStockThreshold = *body.LowStockThreshold
	}
	if body.IsOrganic != nil {
		product.IsOrganic = *body.IsOrganic
	}
	if body.HarvestDate != nil {
		product.HarvestDate = *body.HarvestDate
	}

	if err := products.Save(product); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

func DeleteProduct(ctx *gin.Context) {
	product, ok := findOwnProduct(ctx)
	if !ok {
		return
	}

	if err := products.Delete(product.ID); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully."})
}

// GetFarmerProducts lists the authenticated farmer's own listings.
func GetFarmerProducts(ctx *gin.Context) {
	productList, err := products.ListByFarmer(getUserID(ctx))
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": productList})
}

// GetLowStockProducts lists the farmer's listings at or below their
// threshold.
func GetLowStockProducts(ctx *gin.Context) {
	productList, err := products.ListLowStockByFarmer(getUserID(ctx))
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": productList})
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadProductImage uploads a listing photo to S3 and attaches the
// resulting URL to the product.
func UploadProductImage(ctx *gin.Context) {
	product, ok := findOwnProduct(ctx)
	if !ok {
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "No file uploaded", err)
		return
	}

	f, err := file.Open()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Unable to open uploaded file", err)
		return
	}
	defer f.Close()

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		bucket = "farmtodoor"
	}

	// Unique key to prevent overwrites
	uniqueFilename := fmt.Sprintf("%d-%s-%s", product.ID, time.Now().Format("20060102150405"), file.Filename)

	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(uniqueFilename),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		log.Printf("Error uploading file %s: %v", file.Filename, err)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to upload image", err)
		return
	}

	product.ImageURL = result.Location
	if err := products.Save(product); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Image uploaded but not saved to product", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Image uploaded", "url": result.Location})
}
