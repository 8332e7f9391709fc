// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"clinicpro-backend/models"
	"clinicpro-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService sends each active practitioner a daily digest of their
// next-day planned sessions.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyDigests)

	c.Start()
	log.Println("Reminder scheduler started")
}

func (s *ReminderService) SendDailyDigests() {
	log.Println("Starting daily schedule digest processing...")

	var practitioners []models.Practitioner
	if err := s.db.Preload("User").Find(&practitioners, "is_active = ?", true).Error; err != nil {
		log.Printf("Failed to fetch practitioners: %v", err)
		return
	}

	tomorrow := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))
	dayAfter := tomorrow.AddDate(0, 0, 1)

	for _, practitioner := range practitioners {
		s.processPractitioner(practitioner, tomorrow, dayAfter)
	}

	log.Println("Daily schedule digest processing completed")
}

func (s *ReminderService) processPractitioner(practitioner models.Practitioner, from, to time.Time) {
	if practitioner.Phone == "" {
		return
	}

	var sessions []models.Session
	err := s.db.Scopes(models.ByDateDesc).
		Where("practitioner_id = ? AND status = ? AND date >= ? AND date < ?",
			practitioner.ID, models.SessionStatusPlanned, from, to).
		Find(&sessions).Error
	if err != nil {
		log.Printf("Practitioner %s: failed to fetch sessions: %v", practitioner.ID, err)
		return
	}
	if len(sessions) == 0 {
		return
	}

	s.sendDigest(practitioner, sessions)
}

func (s *ReminderService) sendDigest(practitioner models.Practitioner, sessions []models.Session) {
	var lines []string
	lines = append(lines, fmt.Sprintf("Hi %s, your sessions for tomorrow:", practitioner.User.FullName()))
	for _, session := range sessions {
		lines = append(lines, fmt.Sprintf("%s - %s (%d min)",
			session.Date.Format("15:04"), session.ClientName, session.Duration))
	}
	message := strings.Join(lines, "\n")

	// WhatsApp when the phone is in E.164 format, SMS otherwise
	channel := "sms"
	to := practitioner.Phone
	if strings.HasPrefix(practitioner.Phone, "+") {
		to = "whatsapp:" + practitioner.Phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send digest to %s: %v", practitioner.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Digest sent to %s, SID: %s", practitioner.Phone, *resp.Sid)
	} else {
		log.Printf("Digest sent to %s, but no SID returned", practitioner.Phone)
	}

	reminderLog := models.ReminderLog{
		PractitionerID: practitioner.ID,
		Message:        message,
		Channel:        channel,
		Status:         status,
		ErrorMessage:   errorMsg,
		SentAt:         time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log digest for practitioner %s: %v", practitioner.ID, err)
	}
}
