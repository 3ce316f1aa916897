package utils

import (
	"fmt"
	"lams/config"
	"net/smtp"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := config.AppConfig.SMTPHost
	smtpPort := config.AppConfig.SMTPPort

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: EduSpark Academy <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	fmt.Println("Email sent successfully to", strings.Join(to, ","))
	return nil
}

// HTML wrapper shared by all outgoing mails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A237E; line-height: 1.6; }
			.content h2 { color: #1A237E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #43A047; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #43A047; margin: 20px 0; }
			.score-badge { display: inline-block; padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: bold; color: white; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>EDUSPARK ACADEMY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 EduSpark Academy. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to EduSpark Academy"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>EduSpark Academy</strong>! We are thrilled to have you onboard.</p>
		<p>Your account has been successfully created. You can now browse courses and start preparing for your exams.</p>
		<p>If you have any questions, feel free to reach out to our support team.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Subscription Purchase Confirmation
func SendSubscriptionPurchasedEmail(email, name, planName string) {
	subject := "Subscription Confirmed: " + planName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have successfully subscribed to the <strong>%s</strong> plan.</p>
		<p>All exams covered by your plan's packages are now unlocked.</p>
		<div class="info-box">
			<strong>Next Steps:</strong> Head to your dashboard and pick an exam to attempt.
		</div>
	`, name, planName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Subscription Successful", body))
}

// 3. Exam Result Notification
func SendExamResultEmail(email, name, examTitle string, percentage float64, passed bool) {
	subject := "Your Result: " + examTitle

	badgeColor := "#DC3545"
	verdict := "NOT PASSED"
	if passed {
		badgeColor = "#28A745"
		verdict = "PASSED"
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your attempt at <strong>%s</strong> has been evaluated.</p>
		<div style="margin: 20px 0; padding: 15px; border: 1px solid #E0E0E0; border-radius: 5px; text-align: center;">
			<span class="score-badge" style="background-color: %s;">%s</span>
			<h1 style="margin: 10px 0; color: %s;">%.2f%%</h1>
		</div>
		<p>Login to your dashboard to review your answers.</p>
	`, name, examTitle, badgeColor, verdict, badgeColor, percentage)

	go SendEmail([]string{email}, subject, getEmailTemplate("Exam Result Published", body))
}

// 4. Subscription Expiry Reminder
func SendSubscriptionExpiryReminder(email, name, planName, expiryStr string) {
	subject := "Your EduSpark Subscription is Expiring Soon"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your <strong>%s</strong> subscription expires on <strong>%s</strong>.</p>
		<p>Renew before it lapses to keep your exam attempts available.</p>
		<a href="#" class="btn">Renew Now</a>
	`, name, planName, expiryStr)

	go SendEmail([]string{email}, subject, getEmailTemplate("Subscription Expiring Soon", body))
}

// 5. Subscription Expired
func SendSubscriptionExpiredEmail(email, name, planName string) {
	subject := "Your EduSpark Subscription Has Expired"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your <strong>%s</strong> subscription has expired.</p>
		<p>Exam attempts are paused until you renew. We hope to see you back soon!</p>
		<a href="#" class="btn">Renew Subscription</a>
	`, name, planName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Subscription Expired", body))
}
