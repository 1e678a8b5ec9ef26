package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/putrawdn/restaurant-mgt/models"
	"github.com/putrawdn/restaurant-mgt/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Register creates a customer account. Passwords are bcrypt-hashed before
// they touch the database.
func (ac *AuthController) Register(c *gin.Context) {
	type request struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Phone     string `json:"phone"`
		Password  string `json:"password" binding:"required,min=8"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	customer := models.Customer{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hashed),
	}

	if err := ac.DB.Create(&customer).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.InfoLogger.Printf("New customer registered: %s", customer.Email)

	utils.RespondJSON(c, http.StatusCreated, "Registration successful", gin.H{
		"customer_id": customer.ID,
	})
}

// Login authenticates a customer or a staff member and returns a JWT. Staff
// with the Manager role receive admin access, everyone else on the roster is
// staff.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		UserType string `json:"user_type"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userType := input.UserType
	if userType == "" {
		userType = "customer"
	}

	var (
		principalID uint
		role        string
		name        string
		hash        string
	)

	switch userType {
	case "customer":
		var customer models.Customer
		if err := ac.DB.Where("email = ?", input.Email).First(&customer).Error; err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
			return
		}
		principalID = customer.ID
		role = "customer"
		name = customer.FullName()
		hash = customer.PasswordHash
	default:
		// Staff/admin login; ContactInfo holds the email address.
		var staff models.Staff
		if err := ac.DB.Where("contact_info = ?", input.Email).First(&staff).Error; err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
			return
		}
		principalID = staff.ID
		role = staff.AccessRole()
		name = staff.FirstName + " " + staff.LastName
		hash = staff.PasswordHash
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(principalID, role)
	if err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.InfoLogger.Printf("Login successful: %s (role=%s)", input.Email, role)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":     token,
		"user_name": name,
		"user_role": strings.ToLower(role),
	})
}

// ErrNoPermission is returned when a principal targets someone else's data.
var ErrNoPermission = &CustomError{"You do not have permission"}

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}
