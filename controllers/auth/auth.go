package authController

import (
	"lams/config"
	"lams/database"
	"lams/middleware"
	"lams/models"
	"lams/utils"
	authValidator "lams/validators/auth"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidator.RegisterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if username already exists
	if err := db.Where("username = ?", reqData.Username).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username is already registered!", nil)
	}

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	role := reqData.Role
	if role == "" {
		role = models.RoleStudent
	}

	newUser := models.User{
		Username:     reqData.Username,
		Email:        reqData.Email,
		PasswordHash: string(hashedPassword),
		FullName:     reqData.FullName,
		Role:         role,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	utils.SendWelcomeEmail(newUser.Email, newUser.Username)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	var result *gorm.DB

	// Retrieve user by username or email
	if reqData.Username != "" {
		result = db.Where("username = ?", reqData.Username).First(&user)
	} else {
		result = db.Where("email = ?", reqData.Email).First(&user)
	}

	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// Best-effort last-login update; a failure never blocks the login
	now := time.Now()
	if err := db.Model(&user).Update("last_login", now).Error; err != nil {
		log.Printf("Error saving last login time for user %d: %v", user.ID, err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Username, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

func Me(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User profile.", user)
}

func RequestOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedOTPRequest").(*authValidator.OTPRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Registration OTPs go to new addresses; everything else needs a user
	if reqData.Purpose != models.OTPPurposeRegistration {
		if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No account found for this email!", nil)
		}
	}

	otp := utils.GenerateOTP()

	otpRecord := models.OTP{
		Email:     reqData.Email,
		Code:      otp,
		Purpose:   reqData.Purpose,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}

	if err := db.Create(&otpRecord).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create OTP!", nil)
	}

	if err := utils.SendOTPEmail(otp, reqData.Email); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP to email!", nil)
	}

	// SMS delivery is best-effort on top of the email
	if reqData.Mobile != "" {
		if err := utils.SendOTPToMobile(reqData.Mobile, otp); err != nil {
			log.Printf("Error sending OTP SMS to %s: %v", reqData.Mobile, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", nil)
}

func VerifyOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVerifyOTP").(*authValidator.VerifyOTPRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var otpRecord models.OTP
	err := db.Where("email = ? AND code = ? AND purpose = ? AND is_verified = false",
		reqData.Email, reqData.Code, reqData.Purpose).
		Order("created_at DESC").
		First(&otpRecord).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid OTP!", nil)
	}

	if otpRecord.IsExpired() {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "OTP has expired!", nil)
	}

	if err := db.Model(&otpRecord).Update("is_verified", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify OTP!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP verified successfully.", nil)
}

func ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetPassword").(*authValidator.ResetPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No account found for this email!", nil)
	}

	// The OTP must have been verified first and still be inside its window
	var otpRecord models.OTP
	err := db.Where("email = ? AND code = ? AND purpose = ? AND is_verified = true",
		reqData.Email, reqData.Code, models.OTPPurposePasswordReset).
		Order("created_at DESC").
		First(&otpRecord).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid OTP!", nil)
	}
	if otpRecord.IsExpired() {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "OTP has expired!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	if err := db.Model(&user).Update("password_hash", string(hashedPassword)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	// A consumed reset OTP cannot be replayed
	db.Delete(&otpRecord)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully.", nil)
}

func CheckUserExists(c *fiber.Ctx) error {
	username := c.Query("username")
	email := c.Query("email")

	if username == "" && email == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Provide username or email to check!", nil)
	}

	db := database.Database.Db

	var count int64
	query := db.Model(&models.User{})
	if username != "" {
		query = query.Where("username = ?", username)
	} else {
		query = query.Where("email = ?", email)
	}
	query.Count(&count)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User existence check.", fiber.Map{
		"exists": count > 0,
	})
}
