package utils

import (
	"fmt"
	"lams/config"
	"log"
	"math/rand"
	"net/smtp"
	"time"

	"github.com/go-resty/resty/v2"
)

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}

// SendOTPToMobile delivers the OTP over the SMS gateway. Validity is fixed
// at 10 minutes to match the stored OTP record.
func SendOTPToMobile(mobile, otp string) error {
	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetQueryParams(map[string]string{
			"authorization":    config.AppConfig.SMSApiKey,
			"route":            "dlt",
			"sender_id":        "EDUSPK",
			"variables_values": fmt.Sprintf("%s|10", otp),
			"flash":            "0",
			"numbers":          mobile,
		}).
		Get(config.AppConfig.SMSApiUrl)
	if err != nil {
		log.Printf("Error while sending OTP: %v", err)
		return err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Failed to send OTP, response code: %d", resp.StatusCode())
		return fmt.Errorf("failed to send OTP, code: %d", resp.StatusCode())
	}

	log.Println("OTP sent successfully to", mobile)
	return nil
}

func SendOTPEmail(otp, email string) error {
	smtpHost := config.AppConfig.SMTPHost
	smtpPort := config.AppConfig.SMTPPort

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password // App password

	to := []string{email}

	subject := "Subject: OTP Verification Code for EduSpark Academy\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">EduSpark Academy OTP Verification</h2>
					<p style="font-size: 16px; color: #555555; text-align: center;">Your One Time Password (OTP) is:</p>
					<h1 style="text-align: center; color: #4CAF50; font-size: 40px; margin: 20px 0;">%s</h1>
					<p style="font-size: 14px; color: #999999; text-align: center;">Do not share this OTP with anyone. It expires in 10 minutes.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Thank you for using our service.</p>
				</div>
			</body>
		</html>
	`, otp)

	message := []byte(subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message)
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}

	fmt.Println("Email sent successfully to", email)
	return nil
}
