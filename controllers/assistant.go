// controllers/assistant.go
package controllers

import (
	"errors"
	"net/http"

	"clinicpro-backend/config"
	"clinicpro-backend/models"
	"clinicpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateAssistantInput struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	Phone           string `json:"phone"`
}

// GetAssistants lists all assistants.
func GetAssistants(c *gin.Context) {
	var assistants []models.Assistant
	if err := config.DB.Preload("User").Order("created_at DESC").Find(&assistants).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve assistants")
		return
	}

	c.JSON(http.StatusOK, assistants)
}

// CreateAssistant creates the account and the assistant profile in one
// transaction, mirroring practitioner creation.
func CreateAssistant(c *gin.Context) {
	var input CreateAssistantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Password != input.ConfirmPassword {
		utils.RespondWithError(c, http.StatusBadRequest, "Passwords do not match")
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	var existing models.User
	result := config.DB.Where("username = ? OR email = ?", input.Username, input.Email).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Username or email already in use")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	user := models.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Password:  input.Password, // Hashed in BeforeCreate hook
		IsActive:  true,
	}

	assistant := models.Assistant{
		ID:       uuid.New(),
		Phone:    input.Phone,
		IsActive: true,
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	assistant.UserID = user.ID
	if err := tx.Create(&assistant).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create assistant")
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, gin.H{
		"message": user.FullName() + " added as assistant",
		"id":      assistant.ID,
	})
}
