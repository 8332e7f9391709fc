// controllers/commission.go
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

type SessionTypeRateInput struct {
	SessionType string `json:"sessionType" binding:"required"`
	Rate        string `json:"rate" binding:"required"`
}

type PaymentMethodRateInput struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	Rate          string `json:"rate" binding:"required"`
}

// GetCommissionRates lists both lookup tables.
func GetCommissionRates(c *gin.Context) {
	var typeRates []models.SessionTypeCommission
	if err := config.DB.Order("session_type").Find(&typeRates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve session type rates")
		return
	}

	var methodRates []models.PaymentMethodCommission
	if err := config.DB.Order("payment_method").Find(&methodRates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payment method rates")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionTypes":   typeRates,
		"paymentMethods": methodRates,
	})
}

// UpsertSessionTypeRate creates or updates the row keyed by session type.
func UpsertSessionTypeRate(c *gin.Context) {
	var input SessionTypeRateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !models.ValidSessionType(input.SessionType) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid session type")
		return
	}

	rate := utils.ParseRate(input.Rate)

	var row models.SessionTypeCommission
	err := config.DB.Where("session_type = ?", input.SessionType).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.SessionTypeCommission{SessionType: input.SessionType, Rate: rate}
		err = config.DB.Create(&row).Error
	} else if err == nil {
		err = config.DB.Model(&row).Update("rate", rate).Error
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save session type rate")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rate for " + input.SessionType + " sessions set to %" + rate.StringFixed(2),
	})
}

// UpsertPaymentMethodRate creates or updates the row keyed by payment method.
func UpsertPaymentMethodRate(c *gin.Context) {
	var input PaymentMethodRateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !models.ValidPaymentMethod(input.PaymentMethod) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment method")
		return
	}

	rate := utils.ParseRate(input.Rate)

	var row models.PaymentMethodCommission
	err := config.DB.Where("payment_method = ?", input.PaymentMethod).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.PaymentMethodCommission{PaymentMethod: input.PaymentMethod, Rate: rate}
		err = config.DB.Create(&row).Error
	} else if err == nil {
		err = config.DB.Model(&row).Update("rate", rate).Error
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save payment method rate")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rate for " + input.PaymentMethod + " payments set to %" + rate.StringFixed(2),
	})
}

// DeleteSessionTypeRate removes a session type row by ID; sessions of that
// type fall back to a zero additional rate.
func DeleteSessionTypeRate(c *gin.Context) {
	rateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid rate ID format")
		return
	}

	result := config.DB.Delete(&models.SessionTypeCommission{}, "id = ?", rateUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete session type rate")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Session type rate not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session type rate deleted"})
}

// DeletePaymentMethodRate removes a payment method row by ID.
func DeletePaymentMethodRate(c *gin.Context) {
	rateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid rate ID format")
		return
	}

	result := config.DB.Delete(&models.PaymentMethodCommission{}, "id = ?", rateUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete payment method rate")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Payment method rate not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment method rate deleted"})
}
