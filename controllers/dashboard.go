// controllers/dashboard.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"clinicpro-backend/config"
	"clinicpro-backend/models"
	"clinicpro-backend/services"
	"clinicpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// selectedPeriod reads the month/year query parameters, defaulting to the
// current month.
func selectedPeriod(c *gin.Context) (int, int) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if raw := c.Query("month"); raw != "" {
		if m, err := strconv.Atoi(raw); err == nil && m >= 1 && m <= 12 {
			month = m
		}
	}
	if raw := c.Query("year"); raw != "" {
		if y, err := strconv.Atoi(raw); err == nil {
			year = y
		}
	}
	return month, year
}

func inMonth(t time.Time, month, year int) bool {
	return int(t.Month()) == month && t.Year() == year
}

// GetAdminDashboard reports clinic-wide totals, the selected month's window
// and a stat row per active practitioner. All money figures come from the
// commission calculator via SummarizeSessions.
func GetAdminDashboard(c *gin.Context) {
	month, year := selectedPeriod(c)

	rates, err := services.LoadRateSnapshot(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load commission rates")
		return
	}

	var sessions []models.Session
	if err := config.DB.Preload("Practitioner").Preload("Practitioner.User").
		Find(&sessions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve sessions")
		return
	}

	var monthly []models.Session
	byPractitioner := make(map[uuid.UUID][]models.Session)
	monthlyByPractitioner := make(map[uuid.UUID][]models.Session)
	for _, s := range sessions {
		byPractitioner[s.PractitionerID] = append(byPractitioner[s.PractitionerID], s)
		if inMonth(s.Date, month, year) {
			monthly = append(monthly, s)
			monthlyByPractitioner[s.PractitionerID] = append(monthlyByPractitioner[s.PractitionerID], s)
		}
	}

	allTime := services.SummarizeSessions(sessions, rates)
	monthlySummary := services.SummarizeSessions(monthly, rates)

	var practitioners []models.Practitioner
	if err := config.DB.Preload("User").Find(&practitioners, "is_active = ?", true).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve practitioners")
		return
	}

	var assistants []models.Assistant
	if err := config.DB.Preload("User").Find(&assistants, "is_active = ?", true).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve assistants")
		return
	}

	practitionerStats := make([]gin.H, 0, len(practitioners))
	for _, p := range practitioners {
		total := services.SummarizeSessions(byPractitioner[p.ID], rates)
		monthlyStat := services.SummarizeSessions(monthlyByPractitioner[p.ID], rates)
		practitionerStats = append(practitionerStats, gin.H{
			"practitionerId":    p.ID,
			"name":              p.User.FullName(),
			"commissionRate":    p.CommissionRate,
			"totalSessions":     total.Count,
			"totalEarnings":     total.Revenue,
			"commissionAmount":  total.Commission,
			"netEarnings":       total.Net,
			"monthlySessions":   monthlyStat.Count,
			"monthlyEarnings":   monthlyStat.Revenue,
			"monthlyCommission": monthlyStat.Commission,
			"monthlyNet":        monthlyStat.Net,
		})
	}

	assistantList := make([]gin.H, 0, len(assistants))
	for _, a := range assistants {
		assistantList = append(assistantList, gin.H{
			"assistantId": a.ID,
			"name":        a.User.FullName(),
			"phone":       a.Phone,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalSessions":     allTime.Count,
		"totalRevenue":      allTime.Revenue,
		"totalCommission":   allTime.Commission,
		"monthlySessions":   monthlySummary.Count,
		"monthlyRevenue":    monthlySummary.Revenue,
		"monthlyCommission": monthlySummary.Commission,
		"monthlyNet":        monthlySummary.Net,
		"practitionerStats": practitionerStats,
		"assistants":        assistantList,
		"selectedMonth":     month,
		"selectedYear":      year,
	})
}

// GetPractitionerDashboard reports the authenticated practitioner's own
// earnings, all-time and for the selected month, plus their latest sessions.
func GetPractitionerDashboard(c *gin.Context) {
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

	month, year := selectedPeriod(c)

	rates, err := services.LoadRateSnapshot(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load commission rates")
		return
	}

	var sessions []models.Session
	if err := config.DB.Preload("Practitioner").Preload("Practitioner.User").
		Where("practitioner_id = ?", practitionerUUID).
		Scopes(models.ByDateDesc).
		Find(&sessions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve sessions")
		return
	}

	var monthly []models.Session
	for _, s := range sessions {
		if inMonth(s.Date, month, year) {
			monthly = append(monthly, s)
		}
	}

	allTime := services.SummarizeSessions(sessions, rates)
	monthlySummary := services.SummarizeSessions(monthly, rates)

	recent := sessions
	if len(recent) > 10 {
		recent = recent[:10]
	}
	recentList := make([]gin.H, 0, len(recent))
	for i := range recent {
		recentList = append(recentList, sessionResponse(&recent[i], rates))
	}

	c.JSON(http.StatusOK, gin.H{
		"totalSessions":     allTime.Count,
		"totalEarnings":     allTime.Revenue,
		"commissionAmount":  allTime.Commission,
		"netEarnings":       allTime.Net,
		"monthlySessions":   monthlySummary.Count,
		"monthlyEarnings":   monthlySummary.Revenue,
		"monthlyCommission": monthlySummary.Commission,
		"monthlyNet":        monthlySummary.Net,
		"recentSessions":    recentList,
		"selectedMonth":     month,
		"selectedYear":      year,
	})
}

// GetAssistantDashboard reports session counts only, with no money fields.
func GetAssistantDashboard(c *gin.Context) {
	month, year := selectedPeriod(c)

	var sessions []models.Session
	if err := config.DB.Find(&sessions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve sessions")
		return
	}

	monthlyCount := 0
	countByPractitioner := make(map[uuid.UUID]int)
	monthlyCountByPractitioner := make(map[uuid.UUID]int)
	for _, s := range sessions {
		countByPractitioner[s.PractitionerID]++
		if inMonth(s.Date, month, year) {
			monthlyCount++
			monthlyCountByPractitioner[s.PractitionerID]++
		}
	}

	var practitioners []models.Practitioner
	if err := config.DB.Preload("User").Find(&practitioners, "is_active = ?", true).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve practitioners")
		return
	}

	practitionerStats := make([]gin.H, 0, len(practitioners))
	for _, p := range practitioners {
		practitionerStats = append(practitionerStats, gin.H{
			"practitionerId":  p.ID,
			"name":            p.User.FullName(),
			"totalSessions":   countByPractitioner[p.ID],
			"monthlySessions": monthlyCountByPractitioner[p.ID],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalSessions":     len(sessions),
		"monthlySessions":   monthlyCount,
		"practitionerStats": practitionerStats,
		"selectedMonth":     month,
		"selectedYear":      year,
	})
}
