// controllers/session.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"clinicpro-backend/config"
	"clinicpro-backend/models"
	"clinicpro-backend/services"
	"clinicpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SessionInput carries the session form. Numeric fields arrive as strings so
// they can be validated with a specific message per field, exactly like the
// form endpoints they replace, and parsed without float rounding.
type SessionInput struct {
	ClientName          string    `json:"clientName" binding:"required"`
	PractitionerID      uuid.UUID `json:"practitionerId" binding:"required"`
	Date                time.Time `json:"date" binding:"required"`
	Duration            string    `json:"duration"`
	Price               string    `json:"price"`
	SessionType         string    `json:"sessionType"`
	PaymentMethod       string    `json:"paymentMethod"`
	ExtraCommissionRate string    `json:"extraCommissionRate"`
	Status              string    `json:"status"`
	Notes               string    `json:"notes"`
}

// sessionResponse serializes a session together with its calculator output.
func sessionResponse(s *models.Session, rates services.RateSnapshot) gin.H {
	return gin.H{
		"id":                  s.ID,
		"practitionerId":      s.PractitionerID,
		"practitionerName":    s.Practitioner.User.FullName(),
		"clientName":          s.ClientName,
		"date":                s.Date,
		"duration":            s.Duration,
		"price":               s.Price,
		"sessionType":         s.SessionType,
		"paymentMethod":       s.PaymentMethod,
		"extraCommissionRate": s.ExtraCommissionRate,
		"notes":               s.Notes,
		"status":              s.Status,
		"commissionAmount":    services.CommissionAmount(s, rates),
		"netAmount":           services.NetAmount(s, rates),
		"commissionBreakdown": services.CommissionBreakdown(s, rates),
		"totalCommissionRate": services.TotalCommissionRate(s, rates),
		"createdAt":           s.CreatedAt,
		"updatedAt":           s.UpdatedAt,
	}
}

// assistantSessionResponse omits every commission field.
func assistantSessionResponse(s *models.Session) gin.H {
	return gin.H{
		"id":               s.ID,
		"practitionerId":   s.PractitionerID,
		"practitionerName": s.Practitioner.User.FullName(),
		"clientName":       s.ClientName,
		"date":             s.Date,
		"duration":         s.Duration,
		"price":            s.Price,
		"sessionType":      s.SessionType,
		"paymentMethod":    s.PaymentMethod,
		"notes":            s.Notes,
		"status":           s.Status,
		"createdAt":        s.CreatedAt,
		"updatedAt":        s.UpdatedAt,
	}
}

// applySessionFilters narrows a listing by the status, practitioner, month
// and year query parameters.
func applySessionFilters(query *gorm.DB, c *gin.Context) *gorm.DB {
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if practitionerID := c.Query("practitioner"); practitionerID != "" {
		query = query.Where("practitioner_id = ?", practitionerID)
	}
	if month := c.Query("month"); month != "" {
		if m, err := strconv.Atoi(month); err == nil {
			query = query.Where("EXTRACT(MONTH FROM date) = ?", m)
		}
	}
	if year := c.Query("year"); year != "" {
		if y, err := strconv.Atoi(year); err == nil {
			query = query.Where("EXTRACT(YEAR FROM date) = ?", y)
		}
	}
	return query
}

// applySessionInput validates the submitted fields and copies them onto the
// session. Assistants cannot touch the extra commission rate: on create it is
// pinned to zero, on update the stored value is kept.
func applySessionInput(s *models.Session, input *SessionInput, allowExtraRate bool, isCreate bool) (string, bool) {
	duration, err := utils.ParseDuration(input.Duration)
	if err != nil {
		return "Invalid duration format", false
	}

	price, err := utils.ParsePrice(input.Price)
	if err != nil {
		if errors.Is(err, utils.ErrNegativePrice) {
			return "Price cannot be negative", false
		}
		return "Invalid price format", false
	}

	sessionType := input.SessionType
	if sessionType == "" {
		sessionType = models.SessionTypeFaceToFace
	}
	if !models.ValidSessionType(sessionType) {
		return "Invalid session type", false
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCash
	}
	if !models.ValidPaymentMethod(paymentMethod) {
		return "Invalid payment method", false
	}

	status := input.Status
	if status == "" {
		status = models.SessionStatusPlanned
	}
	if !models.ValidSessionStatus(status) {
		return "Invalid status", false
	}

	s.ClientName = input.ClientName
	s.PractitionerID = input.PractitionerID
	s.Date = input.Date
	s.Duration = duration
	s.Price = price
	s.SessionType = sessionType
	s.PaymentMethod = paymentMethod
	s.Status = status
	s.Notes = input.Notes

	if allowExtraRate {
		s.ExtraCommissionRate = utils.ParseRate(input.ExtraCommissionRate)
	} else if isCreate {
		s.ExtraCommissionRate = decimal.Zero
	}

	return "", true
}

func createSession(c *gin.Context, allowExtraRate bool) {
	var input SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var practitioner models.Practitioner
	if err := config.DB.First(&practitioner, "id = ?", input.PractitionerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Practitioner not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var session models.Session
	if msg, ok := applySessionInput(&session, &input, allowExtraRate, true); !ok {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	if err := config.DB.Create(&session).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create session")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Session created for " + session.ClientName,
		"id":      session.ID,
	})
}

func updateSession(c *gin.Context, allowExtraRate bool) {
	sessionID := c.Param("id")
	sessionUUID, err := uuid.Parse(sessionID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var session models.Session
	if err := config.DB.First(&session, "id = ?", sessionUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Session not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var practitioner models.Practitioner
	if err := config.DB.First(&practitioner, "id = ?", input.PractitionerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Practitioner not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if msg, ok := applySessionInput(&session, &input, allowExtraRate, false); !ok {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	if err := config.DB.Save(&session).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session updated for " + session.ClientName})
}

func deleteSession(c *gin.Context) {
	sessionID := c.Param("id")
	sessionUUID, err := uuid.Parse(sessionID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	result := config.DB.Delete(&models.Session{}, "id = ?", sessionUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Session not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully"})
}

// Admin session management

func GetSessions(c *gin.Context) {
	rates, err := services.LoadRateSnapshot(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load commission rates")
		return
	}

	var sessions []models.Session
	query := applySessionFilters(config.DB.Preload("Practitioner").Preload("Practitioner.User"), c)
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

func CreateSession(c *gin.Context) {
	createSession(c, true)
}

func UpdateSession(c *gin.Context) {
	updateSession(c, true)
}

func DeleteSession(c *gin.Context) {
	deleteSession(c)
}

// Assistant session management: same operations without any access to the
// extra commission rate and without commission data in listings.

func AssistantGetSessions(c *gin.Context) {
	var sessions []models.Session
	query := applySessionFilters(config.DB.Preload("Practitioner").Preload("Practitioner.User"), c)
	if err := query.Scopes(models.ByDateDesc).Find(&sessions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve sessions")
		return
	}

	response := make([]gin.H, 0, len(sessions))
	for i := range sessions {
		response = append(response, assistantSessionResponse(&sessions[i]))
	}

	c.JSON(http.StatusOK, response)
}

func AssistantCreateSession(c *gin.Context) {
	createSession(c, false)
}

func AssistantUpdateSession(c *gin.Context) {
	updateSession(c, false)
}

func AssistantDeleteSession(c *gin.Context) {
	deleteSession(c)
}
