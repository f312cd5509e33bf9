package services

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/vitalhq/medboard/backend/internal/models"
	"github.com/vitalhq/medboard/backend/pkg/logger"
)

type EmailService struct {
	db *gorm.DB
}

type EmailConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
	UseTLS   bool
}

func NewEmailService(db *gorm.DB) *EmailService {
	return &EmailService{db: db}
}

func (s *EmailService) GetConfig() *EmailConfig {
	config := &EmailConfig{}

	var configs []models.SystemConfig
	s.db.Where("config_group = ?", "email").Find(&configs)

	for _, c := range configs {
		switch c.Key {
		case "smtp_enabled":
			config.Enabled = c.Value == "true"
		case "smtp_host":
			config.Host = c.Value
		case "smtp_port":
			if port, err := strconv.Atoi(c.Value); err == nil {
				config.Port = port
			}
		case "smtp_username":
			config.Username = c.Value
		case "smtp_password":
			config.Password = c.Value
		case "smtp_from":
			config.From = c.Value
		case "smtp_use_tls":
			config.UseTLS = c.Value == "true"
		}
	}

	if config.Port == 0 {
		config.Port = 587
	}

	return config
}

// VaccinationReminder carries everything the reminder email needs.
type VaccinationReminder struct {
	PatientName      string
	PatientEmail     string
	VaccineName      string
	DoseNumber       int
	DueDate          string
	OrganizationName string
}

// SendVaccinationReminder emails a patient about an upcoming dose.
// Silently a no-op when email is not configured.
func (s *EmailService) SendVaccinationReminder(reminder *VaccinationReminder) error {
	config := s.GetConfig()
	if !config.Enabled || config.Host == "" {
		return nil
	}

	if reminder.PatientEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("[%s] Vaccination reminder: %s due %s",
		reminder.OrganizationName, reminder.VaccineName, reminder.DueDate)

	body := s.buildReminderBody(reminder)

	return s.sendEmail(config, []string{reminder.PatientEmail}, subject, body)
}

func (s *EmailService) buildReminderBody(r *VaccinationReminder) string {
	var sb strings.Builder

	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString("<h2>Vaccination Reminder</h2>")
	sb.WriteString(fmt.Sprintf("<p>Dear %s,</p>", r.PatientName))
	sb.WriteString("<table style=\"border-collapse: collapse; margin-bottom: 20px;\">")

	rows := []struct{ label, value string }{
		{"Vaccine", r.VaccineName},
		{"Dose", fmt.Sprintf("%d", r.DoseNumber)},
		{"Due date", r.DueDate},
		{"Clinic", r.OrganizationName},
	}

	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("<tr><td style=\"padding: 8px; border: 1px solid #ddd; font-weight: bold;\">%s</td><td style=\"padding: 8px; border: 1px solid #ddd;\">%s</td></tr>", row.label, row.value))
	}
	sb.WriteString("</table>")

	sb.WriteString("<p>Please contact your clinic to schedule an appointment.</p>")
	sb.WriteString(fmt.Sprintf("<hr><p style=\"color: #888; font-size: 12px;\">%s</p>", r.OrganizationName))
	sb.WriteString("</body></html>")

	return sb.String()
}

func (s *EmailService) sendEmail(config *EmailConfig, to []string, subject, body string) error {
	from := config.From
	if from == "" {
		from = config.Username
	}

	headers := make(map[string]string)
	headers["From"] = from
	headers["To"] = strings.Join(to, ",")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var message strings.Builder
	for k, v := range headers {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	message.WriteString("\r\n")
	message.WriteString(body)

	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	var err error
	if config.UseTLS {
		err = s.sendEmailTLS(config, addr, auth, from, to, message.String())
	} else {
		err = smtp.SendMail(addr, auth, from, to, []byte(message.String()))
	}

	if err != nil {
		logger.Infof("[Email] Failed to send email: %v", err)
		return err
	}

	logger.Infof("[Email] Sent reminder to %v", to)
	return nil
}

func (s *EmailService) sendEmailTLS(config *EmailConfig, addr string, auth smtp.Auth, from string, to []string, message string) error {
	tlsConfig := &tls.Config{
		ServerName: config.Host,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, config.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}

	_, err = w.Write([]byte(message))
	if err != nil {
		return err
	}

	return w.Close()
}
