package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/greenvalley/farmtodoor-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(
		&models.User{}, &models.FarmerRating{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{}, &models.OrderItem{},
		&models.Notification{}, &models.LowStockAlert{},
	))

	Init(database, nil, nil)

	server := gin.New()
	server.POST("/auth/signup", Signup)
	server.POST("/auth/login", Login)
	return server, database
}

func postJSON(t *testing.T, server *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func asUser(userID uint, role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set("userId", userID)
		ctx.Set("role", role)
	}
}

func putJSON(t *testing.T, server *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func TestUpdateProfileLeavesOmittedFieldsAlone(t *testing.T) {
	server, database := setupAuthRouter(t)

	user := models.User{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Role:    models.RoleUser,
		Address: "123 Main St",
		Phone:   "+1234567890",
	}
	require.NoError(t, database.Create(&user).Error)
	server.PUT("/auth/profile", asUser(user.ID, user.Role), UpdateProfile)

	rec := putJSON(t, server, "/auth/profile", gin.H{"name": "Jane Q. Doe"})
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.User
	require.NoError(t, database.First(&stored, user.ID).Error)
	assert.Equal(t, "Jane Q. Doe", stored.Name)
	assert.Equal(t, "123 Main St", stored.Address)
	assert.Equal(t, "+1234567890", stored.Phone)

	// An explicit empty address still clears it.
	rec = putJSON(t, server, "/auth/profile", gin.H{"address": ""})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, database.First(&stored, user.ID).Error)
	assert.Empty(t, stored.Address)
	assert.Equal(t, "+1234567890", stored.Phone)
}

func TestSignupAndLogin(t *testing.T) {
	server, _ := setupAuthRouter(t)

	rec := postJSON(t, server, "/auth/signup", gin.H{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "secret123",
		"role":     models.RoleUser,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, server, "/auth/login", gin.H{
		"email":    "jane@example.com",
		"password": "secret123",
		"role":     models.RoleUser,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "Jane Doe", body.User.Name)
	assert.Empty(t, body.User.Password)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	server, _ := setupAuthRouter(t)

	payload := gin.H{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "secret123",
		"role":     models.RoleUser,
	}
	require.Equal(t, http.StatusCreated, postJSON(t, server, "/auth/signup", payload).Code)

	rec := postJSON(t, server, "/auth/signup", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already exists")
}

func TestSignupRejectsAdminRole(t *testing.T) {
	server, _ := setupAuthRouter(t)

	rec := postJSON(t, server, "/auth/signup", gin.H{
		"name":     "Sneaky",
		"email":    "sneaky@example.com",
		"password": "secret123",
		"role":     models.RoleAdmin,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginRejectsRoleMismatch(t *testing.T) {
	server, _ := setupAuthRouter(t)

	require.Equal(t, http.StatusCreated, postJSON(t, server, "/auth/signup", gin.H{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "secret123",
		"role":     models.RoleUser,
	}).Code)

	rec := postJSON(t, server, "/auth/login", gin.H{
		"email":    "jane@example.com",
		"password": "secret123",
		"role":     models.RoleFarmer,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials or role")
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	server, _ := setupAuthRouter(t)

	require.Equal(t, http.StatusCreated, postJSON(t, server, "/auth/signup", gin.H{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "secret123",
		"role":     models.RoleUser,
	}).Code)

	rec := postJSON(t, server, "/auth/login", gin.H{
		"email":    "jane@example.com",
		"password": "wrong",
		"role":     models.RoleUser,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginBlocksDeactivatedFarmer(t *testing.T) {
	server, database := setupAuthRouter(t)

	require.Equal(t, http.StatusCreated, postJSON(t, server, "/auth/signup", gin.H{
		"name":     "Sarah Farmer",
		"email":    "sarah@example.com",
		"password": "secret123",
		"role":     models.RoleFarmer,
		"farmName": "Green Valley Farm",
	}).Code)

	require.NoError(t, database.Model(&models.User{}).
		Where("email = ?", "sarah@example.com").
		Update("is_active", false).Error)

	rec := postJSON(t, server, "/auth/login", gin.H{
		"email":    "sarah@example.com",
		"password": "secret123",
		"role":     models.RoleFarmer,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "deactivated")
}
