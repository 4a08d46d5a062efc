package service

import (
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pulseplan/backend/internal/models"
)

type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	adminEmail   string
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func NewEmailService() IEmailService {
	return &EmailService{
		smtpHost:     readSecret("smtp_host"),
		smtpPort:     readSecret("smtp_port"),
		smtpUsername: readSecret("smtp_username"),
		smtpPassword: readSecret("smtp_password"),
		fromEmail:    readSecret("email_from"),
		fromName:     readSecret("email_from_name"),
		adminEmail:   readSecret("admin_email"),
	}
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	// If SMTP is not configured, log the email instead
	if s.smtpHost == "" || s.smtpPort == "" {
		fmt.Printf("SMTP not configured, logging email:\n")
		fmt.Printf("To: %s\n", to)
		fmt.Printf("Subject: %s\n", subject)
		fmt.Printf("Body:\n%s\n", body)
		fmt.Printf("--- End Email ---\n")
		return nil
	}

	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", to, from, subject, body))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *EmailService) SendWelcomeEmail(user *models.User) error {
	subject := "Welcome to PulsePlan!"
	body := s.buildWelcomeEmailBody(user)
	return s.SendEmail(user.Email, subject, body)
}

func (s *EmailService) SendStreakLostEmail(user *models.User, previousStreak int) error {
	subject := "Your streak reset, but today is day one"
	body := s.buildStreakLostEmailBody(user, previousStreak)
	return s.SendEmail(user.Email, subject, body)
}

func (s *EmailService) SendFeedbackNotification(feedback *models.Feedback, user *models.User) error {
	toEmail := s.adminEmail
	if toEmail == "" {
		toEmail = s.fromEmail
	}

	caser := cases.Title(language.English)
	subject := fmt.Sprintf("[PulsePlan] New %s: %s", caser.String(feedback.Type), feedback.Title)
	body := s.buildFeedbackEmailBody(feedback, user)

	return s.SendEmail(toEmail, subject, body)
}

func (s *EmailService) buildWelcomeEmailBody(user *models.User) string {
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173" // Development fallback
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>Welcome to PulsePlan!</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background-color: #2E7DFF; color: white; padding: 20px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="margin: 0; font-size: 28px;">PulsePlan</h1>
		<p style="margin: 10px 0 0 0; font-size: 16px;">Your Daily Nutrition and Training Companion</p>
	</div>

	<div style="background-color: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px;">
		<h2 style="color: #2E7DFF; margin-top: 0;">Hello %s!</h2>
		<p>Your account is ready. Here is how to get the most out of PulsePlan:</p>

		<ul style="padding-left: 20px;">
			<li style="margin-bottom: 10px;"><strong>Set up your profile:</strong> your age, height, weight and goal drive your daily calorie and macro targets</li>
			<li style="margin-bottom: 10px;"><strong>Generate a plan:</strong> get a personalized diet and workout plan in seconds</li>
			<li style="margin-bottom: 10px;"><strong>Log your meals:</strong> completed meals count toward your daily totals</li>
			<li style="margin-bottom: 10px;"><strong>Show up daily:</strong> every active day extends your streak</li>
		</ul>

		<div style="text-align: center; margin: 30px 0;">
			<a href="%s" style="background-color: #2E7DFF; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px; font-weight: bold; font-size: 16px; display: inline-block;">
				Open PulsePlan
			</a>
		</div>

		<div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd;">
			<p style="color: #666; font-size: 12px; margin: 0;">
				See you tomorrow,<br>
				The PulsePlan Team
			</p>
		</div>
	</div>
</body>
</html>
	`, user.Name, frontendURL)
}

func (s *EmailService) buildStreakLostEmailBody(user *models.User, previousStreak int) string {
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173" // Development fallback
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>Your streak reset - PulsePlan</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background-color: #2E7DFF; color: white; padding: 20px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="margin: 0; font-size: 28px;">PulsePlan</h1>
	</div>

	<div style="background-color: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px;">
		<h2 style="color: #2E7DFF; margin-top: 0;">Hey %s,</h2>
		<p>Your %d-day streak ended, and that's okay. Consistency is built on comebacks, and you're already back at day one.</p>

		<div style="text-align: center; margin: 30px 0;">
			<a href="%s" style="background-color: #2E7DFF; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px; font-weight: bold; font-size: 16px; display: inline-block;">
				Start a New Streak
			</a>
		</div>

		<div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd;">
			<p style="color: #666; font-size: 12px; margin: 0;">
				You can turn off streak emails in your notification settings.
			</p>
		</div>
	</div>
</body>
</html>
	`, user.Name, previousStreak, frontendURL)
}

func (s *EmailService) buildFeedbackEmailBody(feedback *models.Feedback, user *models.User) string {
	caser := cases.Title(language.English)

	var userInfo string
	if user != nil {
		userInfo = fmt.Sprintf(`
			<p><strong>User Information:</strong></p>
			<ul>
				<li>Email: %s</li>
				<li>User ID: %s</li>
				<li>Created: %s</li>
			</ul>
		`, user.Email, user.ID, user.CreatedAt.Format("2006-01-02 15:04:05"))
	} else {
		userInfo = "<p><strong>User:</strong> Anonymous</p>"
	}

	var technicalInfo string
	if feedback.UserAgent != "" {
		technicalInfo = fmt.Sprintf(`
			<p><strong>Technical Information:</strong></p>
			<ul>
				<li>User Agent: %s</li>
			</ul>
		`, feedback.UserAgent)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>New Feedback - PulsePlan</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<h2>New %s Report</h2>

	<div style="background-color: #f9f9f9; padding: 15px; border-left: 4px solid #2E7DFF; margin: 20px 0;">
		<h3>%s</h3>
		<p><strong>Type:</strong> %s</p>
		<p><strong>Status:</strong> %s</p>
		<p><strong>Submitted:</strong> %s</p>
	</div>

	<div style="margin: 20px 0;">
		<h4>Description:</h4>
		<div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px;">
			%s
		</div>
	</div>

	%s

	%s

	<div style="margin-top: 30px; padding: 15px; background-color: #e9ecef; border-radius: 5px;">
		<p><strong>Feedback ID:</strong> %s</p>
		<p style="font-size: 12px; color: #666;">
			This is an automated notification from the PulsePlan feedback system.
		</p>
	</div>
</body>
</html>
	`,
		caser.String(feedback.Type),
		feedback.Title,
		caser.String(feedback.Type),
		caser.String(feedback.Status),
		feedback.CreatedAt.Format("2006-01-02 15:04:05 MST"),
		strings.ReplaceAll(feedback.Description, "\n", "<br>"),
		userInfo,
		technicalInfo,
		feedback.ID,
	)
}
