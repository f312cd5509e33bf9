package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/models"
	"github.com/vitalhq/medboard/backend/pkg/logger"
)

const reminderLockName = "vaccination_reminders"

// ReminderService finds vaccinations coming due and queues reminder
// emails for them. One sweep runs per day, on clinic workdays only, and
// a database lease keeps multiple replicas from sweeping at once.
type ReminderService struct {
	db             *gorm.DB
	emailService   *EmailService
	holidayService *HolidayService
	configSvc      *SystemConfigService
	cronScheduler  *cron.Cron
	currentEntryID cron.EntryID
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{
		db:             db,
		emailService:   NewEmailService(db),
		holidayService: NewHolidayService(),
		configSvc:      NewSystemConfigService(db),
	}
}

func (s *ReminderService) StartScheduler() {
	s.cronScheduler = cron.New()

	s.updateSchedule()

	s.cronScheduler.Start()
	logger.Info().Msg("[Reminder] Scheduler started")
}

func (s *ReminderService) StopScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

func (s *ReminderService) updateSchedule() {
	if s.currentEntryID != 0 {
		s.cronScheduler.Remove(s.currentEntryID)
	}

	sendTime := s.configSvc.GetWithDefault("reminder_time", "09:00")
	parts := strings.Split(sendTime, ":")
	hour := "9"
	minute := "0"
	if len(parts) == 2 {
		hour = parts[0]
		minute = parts[1]
	}

	cronExpr := fmt.Sprintf("%s %s * * *", minute, hour)

	entryID, err := s.cronScheduler.AddFunc(cronExpr, func() {
		if err := s.RunSweep(); err != nil {
			logger.Errorf("[Reminder] Sweep failed: %v", err)
		}
	})
	if err != nil {
		logger.Errorf("[Reminder] Failed to add cron job: %v", err)
		return
	}

	s.currentEntryID = entryID
	logger.Infof("[Reminder] Scheduled at %s (cron: %s)", sendTime, cronExpr)
}

func (s *ReminderService) isEnabled() bool {
	return s.configSvc.GetWithDefault("reminder_enabled", "false") == "true"
}

func (s *ReminderService) leadDays() int {
	days, err := strconv.Atoi(s.configSvc.GetWithDefault("reminder_lead_days", "7"))
	if err != nil || days < 0 {
		return 7
	}
	return days
}

func (s *ReminderService) countryCode() string {
	return s.configSvc.GetWithDefault("reminder_country", "US")
}

// RunSweep queues reminders for every dose due within the lead window.
func (s *ReminderService) RunSweep() error {
	if !s.isEnabled() {
		return nil
	}

	now := time.Now()
	if !s.holidayService.IsWorkday(now, s.countryCode()) {
		logger.Info().Msg("[Reminder] Skipping sweep, not a clinic workday")
		return nil
	}

	lockKey := now.Format("2006-01-02")
	acquired, err := s.tryAcquireLock(reminderLockName, lockKey, 23*time.Hour)
	if err != nil {
		return err
	}
	if !acquired {
		logger.Info().Msg("[Reminder] Another replica already swept today")
		return nil
	}

	cutoff := now.AddDate(0, 0, s.leadDays())

	var due []models.Vaccination
	if err := s.db.Preload("Patient").
		Where("next_due_date IS NOT NULL AND next_due_date <= ? AND reminder_sent_at IS NULL", cutoff).
		Find(&due).Error; err != nil {
		return err
	}

	if len(due) == 0 {
		logger.Info().Msg("[Reminder] No doses due")
		return nil
	}

	queue := GetTaskQueue()
	queued := 0
	for _, v := range due {
		if v.Patient == nil || v.Patient.Email == "" {
			continue
		}

		var org models.Organization
		s.db.First(&org, v.OrganizationID)

		task := &ReminderTask{
			VaccinationID:    v.ID,
			PatientID:        v.PatientID,
			OrganizationID:   v.OrganizationID,
			PatientName:      v.Patient.FirstName + " " + v.Patient.LastName,
			PatientEmail:     v.Patient.Email,
			VaccineName:      v.VaccineName,
			DoseNumber:       v.DoseNumber,
			DueDate:          v.NextDueDate.Format("2006-01-02"),
			OrganizationName: org.Name,
		}
		if err := queue.Enqueue(task); err != nil {
			logger.Errorf("[Reminder] Failed to enqueue vaccination %d: %v", v.ID, err)
			continue
		}
		queued++
	}

	logger.Infof("[Reminder] Queued %d of %d due reminders", queued, len(due))
	return nil
}

// ProcessReminder delivers one reminder. Wired as the task queue
// processor in both async and sync modes.
func (s *ReminderService) ProcessReminder(ctx context.Context, task *ReminderTask) error {
	reminder := &VaccinationReminder{
		PatientName:      task.PatientName,
		PatientEmail:     task.PatientEmail,
		VaccineName:      task.VaccineName,
		DoseNumber:       task.DoseNumber,
		DueDate:          task.DueDate,
		OrganizationName: task.OrganizationName,
	}

	if err := s.emailService.SendVaccinationReminder(reminder); err != nil {
		return err
	}

	now := time.Now()
	return s.db.Model(&models.Vaccination{}).
		Where("id = ?", task.VaccinationID).
		Update("reminder_sent_at", now).Error
}

// tryAcquireLock takes the daily sweep lease. Returns false when another
// replica holds a live lease for the same key.
func (s *ReminderService) tryAcquireLock(name, key string, ttl time.Duration) (bool, error) {
	now := time.Now()

	// Clear expired leases first so the unique index can be retaken.
	if err := s.db.Where("lock_name = ? AND expires_at < ?", name, now).
		Delete(&models.SchedulerLock{}).Error; err != nil {
		return false, err
	}

	hostname, _ := os.Hostname()
	lock := models.SchedulerLock{
		LockName:  name,
		LockKey:   key,
		LockedBy:  hostname,
		LockedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	// A unique-index violation here means another replica won the race.
	if err := s.db.Create(&lock).Error; err != nil {
		return false, nil
	}
	return true, nil
}
