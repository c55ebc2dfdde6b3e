package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser   = "user"
	RoleFarmer = "farmer"
	RoleAdmin  = "admin"
)

type User struct {
	gorm.Model
	Name       string    `json:"name"`
	Email      string    `json:"email" gorm:"uniqueIndex;size:191"`
	Password   string    `json:"-"`
	Role       string    `json:"role"`
	Address    string    `json:"address"`
	Phone      string    `json:"phone"`
	JoinedDate time.Time `json:"joinedDate"`

	// Farmer profile
	FarmName     string         `json:"farmName,omitempty"`
	Location     string         `json:"location,omitempty"`
	Rating       float64        `json:"rating"`
	TotalRatings int            `json:"totalRatings"`
	IsActive     bool           `json:"isActive" gorm:"default:true"`
	Ratings      []FarmerRating `json:"ratings,omitempty" gorm:"foreignKey:FarmerID;constraint:OnDelete:CASCADE"`

	// Admin profile
	Department string `json:"department,omitempty"`

	PasswordResetToken string `json:"-"`
}

// DisplayName is what gets snapshotted onto products and orders.
// Farmers trade under their farm name when they have one.
func (u *User) DisplayName() string {
	if u.Role == RoleFarmer && u.FarmName != "" {
		return u.FarmName
	}
	return u.Name
}

type FarmerRating struct {
	gorm.Model
	FarmerID uint      `json:"farmerId" gorm:"index"`
	UserID   uint      `json:"userId"`
	UserName string    `json:"userName"`
	OrderID  uint      `json:"orderId"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type RegisterData struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	FarmName string `json:"farmName"`
	Location string `json:"location"`
}
