// controllers/practitioner.go
package controllers

import (
	"errors"
	"net/http"

	"clinicpro-backend/config"
	"clinicpro-backend/models"
	"clinicpro-backend/services"
	"clinicpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreatePractitionerInput struct {
	Username            string `json:"username" binding:"required"`
	Email               string `json:"email" binding:"required,email"`
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Password            string `json:"password" binding:"required,min=8"`
	ConfirmPassword     string `json:"confirmPassword" binding:"required"`
	Phone               string `json:"phone"`
	HourlyRate          string `json:"hourlyRate"`
	CommissionRate      string `json:"commissionRate"`
	ExtraCommissionRate string `json:"extraCommissionRate"`
}

type UpdatePractitionerInput struct {
	Email               *string `json:"email"`
	FirstName           *string `json:"firstName"`
	LastName            *string `json:"lastName"`
	Phone               *string `json:"phone"`
	HourlyRate          *string `json:"hourlyRate"`
	CommissionRate      *string `json:"commissionRate"`
	ExtraCommissionRate *string `json:"extraCommissionRate"`
	IsActive            *bool   `json:"isActive"`
	Password            *string `json:"password"`
	ConfirmPassword     *string `json:"confirmPassword"`
}

type ExtraCommissionInput struct {
	ExtraCommissionRate string `json:"extraCommissionRate" binding:"required"`
}

// GetPractitioners lists all practitioners with active/passive counts.
func GetPractitioners(c *gin.Context) {
	var practitioners []models.Practitioner
	if err := config.DB.Preload("User").Order("created_at DESC").Find(&practitioners).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve practitioners")
		return
	}

	active := 0
	for _, p := range practitioners {
		if p.IsActive {
			active++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"practitioners": practitioners,
		"total":         len(practitioners),
		"active":        active,
		"passive":       len(practitioners) - active,
	})
}

// CreatePractitioner creates the account and the practitioner profile in one
// transaction, so a failure on either side leaves nothing behind.
func CreatePractitioner(c *gin.Context) {
	var input CreatePractitionerInput
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

	// Base rate defaults to 50% when the form leaves it blank
	commissionRate := utils.ParseRate(input.CommissionRate)
	if input.CommissionRate == "" {
		commissionRate = decimal.NewFromInt(50)
	}

	user := models.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Password:  input.Password, // Hashed in BeforeCreate hook
		IsActive:  true,
	}

	practitioner := models.Practitioner{
		ID:                  uuid.New(),
		Phone:               input.Phone,
		HourlyRate:          utils.ParseRate(input.HourlyRate),
		CommissionRate:      commissionRate,
		ExtraCommissionRate: utils.ParseRate(input.ExtraCommissionRate),
		IsActive:            true,
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

	practitioner.UserID = user.ID
	if err := tx.Create(&practitioner).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create practitioner")
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, gin.H{
		"message": user.FullName() + " added as practitioner",
		"id":      practitioner.ID,
	})
}

// UpdatePractitioner edits the profile and its linked account.
func UpdatePractitioner(c *gin.Context) {
	practitionerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid practitioner ID format")
		return
	}

	var practitioner models.Practitioner
	if err := config.DB.Preload("User").First(&practitioner, "id = ?", practitionerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Practitioner not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input UpdatePractitionerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	user := practitioner.User

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		practitioner.Phone = *input.Phone
	}
	if input.HourlyRate != nil {
		practitioner.HourlyRate = utils.ParseRate(*input.HourlyRate)
	}
	if input.CommissionRate != nil {
		practitioner.CommissionRate = utils.ParseRate(*input.CommissionRate)
	}
	if input.ExtraCommissionRate != nil {
		practitioner.ExtraCommissionRate = utils.ParseRate(*input.ExtraCommissionRate)
	}
	if input.IsActive != nil {
		practitioner.IsActive = *input.IsActive
	}

	if input.Password != nil && *input.Password != "" {
		if input.ConfirmPassword == nil || *input.Password != *input.ConfirmPassword {
			utils.RespondWithError(c, http.StatusBadRequest, "Passwords do not match")
			return
		}
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update password")
			return
		}
		user.Password = hashed
	}

	tx := config.DB.Begin()
	if err := tx.Save(&user).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}
	if err := tx.Save(&practitioner).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update practitioner")
		return
	}
	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": user.FullName() + " updated successfully"})
}

func setPractitionerActive(c *gin.Context, active bool) {
	practitionerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid practitioner ID format")
		return
	}

	result := config.DB.Model(&models.Practitioner{}).
		Where("id = ?", practitionerUUID).
		Update("is_active", active)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update practitioner")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Practitioner not found")
		return
	}

	message := "Practitioner deactivated"
	if active {
		message = "Practitioner activated"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func ActivatePractitioner(c *gin.Context) {
	setPractitionerActive(c, true)
}

func DeactivatePractitioner(c *gin.Context) {
	setPractitionerActive(c, false)
}

// UpdateExtraCommission sets the admin-adjustable extra rate on a profile.
func UpdateExtraCommission(c *gin.Context) {
	practitionerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid practitioner ID format")
		return
	}

	var input ExtraCommissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	rate := utils.ParseRate(input.ExtraCommissionRate)

	result := config.DB.Model(&models.Practitioner{}).
		Where("id = ?", practitionerUUID).
		Update("extra_commission_rate", rate)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update extra commission rate")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Practitioner not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Extra commission rate set to %" + rate.StringFixed(2)})
}

// GetMySessions lists the authenticated practitioner's own sessions with
// commission details, filtered like the admin listing.
func GetMySessions(c *gin.Context) {
	profileID, exists := c.Get("profileId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Profile ID not found in context")
		return
	}

	practitionerUUID, err := uuid.Parse(profileID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid profile ID format")
		return
	}

	rates, err := services.LoadRateSnapshot(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load commission rates")
		return
	}

	var sessions []models.Session
	query := config.DB.Preload("Practitioner").Preload("Practitioner.User").
		Where("practitioner_id = ?", practitionerUUID)
	query = applySessionFilters(query, c)
	if err := query.Scopes(models.ByDateDesc).Find(&sessions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve sessions")
		return
	}

	response := make([]gin.H, 0, len(sessions))
	for i := range sessions {
		response = append(response, sessionResponse(&sessions[i], rates))
	}

	c.JSON(http.StatusOK, response)
}
