package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/supremebiotech/pestcontrol-crm/db"
	"github.com/supremebiotech/pestcontrol-crm/models"
	"github.com/supremebiotech/pestcontrol-crm/utils"
)

// StartCronJobs initializes and starts the cron scheduler for inspection reminders
func StartCronJobs() {
	c := cron.New()
	// Run every morning to remind customers of tomorrow's inspections
	_, err := c.AddFunc("0 8 * * *", sendInspectionReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for inspection reminders")
}

// sendInspectionReminders mails customers whose inspection is tomorrow
func sendInspectionReminders() {
	now := time.Now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	dayAfter := tomorrow.AddDate(0, 0, 1)

	var services []models.Service
	err := db.DB.Preload("Customer").Preload("Property").
		Where("status = ? AND preferred_date >= ? AND preferred_date < ?",
			models.StatusScheduled, tomorrow, dayAfter).
		Find(&services).Error
	if err != nil {
		log.Printf("Error fetching services for reminders: %v", err)
		return
	}

	for _, service := range services {
		if err := sendReminderEmail(&service); err != nil {
			log.Printf("Failed to send reminder for service %d: %v", service.ID, err)
			continue
		}
		log.Printf("Sent reminder for service %d to %s", service.ID, service.Customer.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(service *models.Service) error {
	subject := fmt.Sprintf("Reminder: Inspection tomorrow - %s", service.Property.PropertyName)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder that your pest inspection is scheduled for tomorrow.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Reference:</strong> %s</li>
			<li><strong>Property:</strong> %s</li>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time Slot:</strong> %s</li>
		</ul>
		<p>Please make sure someone is available at the property during the chosen window.</p>
		<p>Best regards,</p>
		<p>Supreme Biotech Solutions</p>
	`, service.Customer.FullName(), service.ReferenceNumber, service.Property.PropertyName,
		service.PreferredService,
		service.PreferredDate.Format("2006-01-02"),
		service.TimeSlot)

	return utils.SendEmail(service.Customer.Email, subject, body)
}
